package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/stemsi/gatemock-backend/internal/config"
	"github.com/stemsi/gatemock-backend/internal/logger"
	"github.com/stemsi/gatemock-backend/internal/model"
	"github.com/stemsi/gatemock-backend/internal/repository"
	"golang.org/x/term"
)

func main() {
	reset := flag.Bool("reset", false, "overwrite the question bank, statistics and result history")
	user := flag.String("user", "", "sign in a default user: admin, student or none")
	yes := flag.Bool("yes", false, "do not ask for confirmation")
	flag.Parse()

	cfg := config.Load()
	log := logger.Component(logger.Setup(cfg.LogLevel, cfg.LogFormat), "seed")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if *reset && !*yes && !confirm(fmt.Sprintf("Reset all exam data in %s storage?", cfg.StorageDriver)) {
		fmt.Println("Aborted.")
		return
	}

	storage, err := repository.OpenStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer storage.Close()

	questionRepo := repository.NewQuestionRepository(storage.KV, log)
	statsRepo := repository.NewStatsRepository(storage.KV, log)
	userRepo := repository.NewCurrentUserRepository(storage.KV, log)

	fmt.Println("=== Seeding GATE Mock Data ===")

	if *reset {
		if err := questionRepo.Replace(ctx, repository.InitialQuestions()); err != nil {
			log.Fatal().Err(err).Msg("Failed to reset question bank")
		}
		if err := statsRepo.Write(ctx, model.DefaultStatistics()); err != nil {
			log.Fatal().Err(err).Msg("Failed to reset statistics")
		}
		if err := repository.NewResultRepository(storage.KV, log).Replace(ctx, nil); err != nil {
			log.Fatal().Err(err).Msg("Failed to clear results")
		}
		fmt.Println("Question bank, statistics and results reset.")
	} else {
		seeded, err := questionRepo.EnsureSeeded(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to seed question bank")
		}
		if seeded {
			fmt.Println("Seeded initial question bank.")
		} else {
			fmt.Println("Question bank already present, left untouched.")
		}
	}

	if *user != "" {
		u, err := pickUser(*user)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid -user")
		}
		if err := userRepo.SetCurrentUser(ctx, u); err != nil {
			log.Fatal().Err(err).Msg("Failed to set current user")
		}
		if u == nil {
			fmt.Println("Signed out.")
		} else {
			fmt.Printf("Signed in as %s (%s).\n", u.Name, u.Role)
		}
	}

	questions, err := questionRepo.GetAllQuestions(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read question bank")
	}
	fmt.Printf("\nSeed completed! Bank holds %d questions.\n", len(questions))
}

func pickUser(name string) (*model.User, error) {
	if name == "none" {
		return nil, nil
	}
	for _, u := range repository.DefaultUsers() {
		if strings.EqualFold(string(u.Role), name) || (name == "student" && u.Role == model.RoleUser) {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("unknown user %q", name)
}

// confirm asks on an interactive terminal. Without one it refuses, so
// scripted runs must pass -yes.
func confirm(question string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "stdin is not a terminal; pass -yes to confirm")
		return false
	}
	fmt.Printf("%s [y/N] ", question)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
