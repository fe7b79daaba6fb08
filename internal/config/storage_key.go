package config

import "fmt"

type StorageKeyStruct struct{}

func NewStorageKeyStruct() *StorageKeyStruct {
	return &StorageKeyStruct{}
}

// Questions returns the key of the question bank document
func (k *StorageKeyStruct) Questions() string {
	return "gate_prep_questions"
}

// Results returns the key of the append-only exam result list
func (k *StorageKeyStruct) Results() string {
	return "gate_prep_results"
}

// Stats returns the key of the user statistics document
func (k *StorageKeyStruct) Stats() string {
	return "gate_prep_stats"
}

// CurrentUser returns the key of the signed-in user document
func (k *StorageKeyStruct) CurrentUser() string {
	return "gate_prep_current_user"
}

// ExamEventsChannel returns the Redis PubSub channel carrying a user's exam
// countdown and submission events
func (k *StorageKeyStruct) ExamEventsChannel(userID string) string {
	return fmt.Sprintf("gate_prep:exam:%s:events", userID)
}

var StorageKey = NewStorageKeyStruct()
