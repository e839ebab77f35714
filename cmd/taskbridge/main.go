package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"taskbridge/internal/agent"
	"taskbridge/internal/auth"
	"taskbridge/internal/config"
	"taskbridge/internal/httpapi"
	"taskbridge/internal/logging"
	"taskbridge/internal/store"
	"taskbridge/internal/tools"
)

var (
	// Global flags
	debug  bool
	userID int

	// user register flags
	password string

	// task add flags
	description string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "taskbridge",
	Short: "taskbridge - natural-language todo assistant",
	Long: `taskbridge interprets plain-English todo commands, executes them against
a per-user task store, and keeps a full audit trail of every request,
tool call, and response.

Run "taskbridge serve" to start the HTTP API, or "taskbridge chat" to
talk to the agent from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		cfg = config.FromEnv()
		if debug {
			cfg.Debug = true
		}

		var err error
		logger, err = logging.New(cfg.Debug)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

var chatCmd = &cobra.Command{
	Use:   "chat [message...]",
	Short: "Send one message to the agent and print its reply",
	Long: `Runs a single message through the full pipeline against the configured
database and prints the agent's response.

Example:
  taskbridge chat --user 1 add a task called "'Buy groceries'"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChat,
}

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Work with tasks directly, bypassing the agent",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runTaskList,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRm,
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userRegisterCmd = &cobra.Command{
	Use:   "register [email]",
	Short: "Create a user account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserRegister,
}

func openStore() (*store.Store, error) {
	s, err := store.Open(cfg.DBDriver, cfg.DBDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return s, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	ag := agent.New(s, tools.NewTaskRegistry(s), logger)
	issuer := auth.NewTokenIssuer(cfg.TokenSecret, cfg.TokenLifetime)
	srv := httpapi.NewServer(logger, cfg.HTTPAddr, s, ag, issuer)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func runChat(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	ag := agent.New(s, tools.NewTaskRegistry(s), logger)

	res := ag.ProcessMessage(cmd.Context(), userID, strings.Join(args, " "))
	fmt.Println(res.Response)
	return nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	task, err := s.CreateTask(cmd.Context(), userID, args[0], description)
	if err != nil {
		return err
	}
	fmt.Printf("created task %d: %s\n", task.ID, task.Title)
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	tasks, err := s.ListTasks(cmd.Context(), userID)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("no tasks")
		return nil
	}
	for _, task := range tasks {
		status := "pending"
		if task.Completed {
			status = "completed"
		}
		fmt.Printf("%4d  %-9s  %s\n", task.ID, status, task.Title)
	}
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid task id %q", args[0])
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	task, err := s.SetTaskCompleted(cmd.Context(), id, userID, true)
	if err != nil {
		return err
	}
	fmt.Printf("completed task %d: %s\n", task.ID, task.Title)
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid task id %q", args[0])
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	task, err := s.DeleteTask(cmd.Context(), id, userID)
	if err != nil {
		return err
	}
	fmt.Printf("deleted task %d: %s\n", task.ID, task.Title)
	return nil
}

func runUserRegister(cmd *cobra.Command, args []string) error {
	if password == "" {
		return errors.New("--password is required")
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user, err := s.CreateUser(cmd.Context(), args[0], hash)
	if err != nil {
		return err
	}
	fmt.Printf("created user %d: %s\n", user.ID, user.Email)
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	chatCmd.Flags().IntVar(&userID, "user", 1, "User id to act as")
	taskCmd.PersistentFlags().IntVar(&userID, "user", 1, "User id to act as")
	taskAddCmd.Flags().StringVar(&description, "description", "", "Task description")
	userRegisterCmd.Flags().StringVar(&password, "password", "", "Password for the new account")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskRmCmd)
	userCmd.AddCommand(userRegisterCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(userCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
