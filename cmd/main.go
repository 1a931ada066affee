package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"gmail-ai-assistant/internal/config"
	"gmail-ai-assistant/internal/generation"
	"gmail-ai-assistant/internal/logging"
	"gmail-ai-assistant/internal/mailbox"
	"gmail-ai-assistant/internal/models"
	"gmail-ai-assistant/internal/processor"
	"gmail-ai-assistant/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	// Optional; the environment may already be populated
	_ = godotenv.Load("config/.env")

	cfg, err := config.Load(configPath())
	if err != nil {
		logging.Log.Fatalf("Error reading configuration: %v", err)
	}

	mailboxClient := mailbox.NewGmailClient(cfg.Gmail.CredentialsPath, cfg.Gmail.TokenPath, cfg.Gmail.UserEmail)
	generationClient := generation.NewClient(cfg.Generation.Host, cfg.Generation.Model)

	records, err := store.NewRecordStore(cfg.Storage.EmailsPath)
	if err != nil {
		logging.Log.Fatalf("Error initializing record store: %v", err)
	}
	drafts, err := store.NewDraftStore(cfg.Storage.DraftsPath)
	if err != nil {
		logging.Log.Fatalf("Error initializing draft store: %v", err)
	}

	proc := processor.New(mailboxClient, generationClient, records, drafts)

	runCommandLoop(proc, cfg)
}

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config.yaml"
}

// runCommandLoop reads operator commands from stdin until exit, EOF, or an
// interrupt signal.
func runCommandLoop(proc *processor.Processor, cfg *models.Config) {
	ctx := context.Background()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Print("\nEnter command (type 'process' to process emails, 'help' for options, 'exit' to quit): ")

		select {
		case <-interrupts:
			fmt.Println("\nExiting...")
			return
		case line, ok := <-lines:
			if !ok {
				fmt.Println()
				return
			}
			if quit := runCommand(ctx, proc, cfg, strings.Fields(line)); quit {
				return
			}
		}
	}
}

// runCommand dispatches one operator command. It returns true when the loop
// should stop.
func runCommand(ctx context.Context, proc *processor.Processor, cfg *models.Config, args []string) bool {
	if len(args) == 0 {
		return false
	}

	switch strings.ToLower(args[0]) {
	case "exit":
		fmt.Println("Exiting...")
		return true

	case "help":
		printHelp()

	case "process":
		limit := cfg.FetchLimit
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n <= 0 {
				fmt.Printf("Invalid limit %q, using default %d\n", args[1], limit)
			} else {
				limit = n
			}
		}

		fmt.Println("Processing emails...")
		fmt.Printf("Drafts will be created in %s\n", cfg.Gmail.UserEmail)

		stats, err := proc.ProcessEmails(ctx, limit)
		if err != nil {
			fmt.Printf("Error processing emails: %v\n", err)
			return false
		}
		fmt.Printf("Processed %d emails\n", stats.TotalEmails)
		fmt.Printf("Categories: %s\n", formatCategories(stats.Categories))

	case "stats":
		stats, err := proc.GetDailyStats()
		if err != nil {
			fmt.Printf("Error reading statistics: %v\n", err)
			return false
		}
		fmt.Println("\nCurrent Email Statistics:")
		fmt.Printf("Total Emails: %d\n", stats.TotalEmails)
		fmt.Printf("Categories: %s\n", formatCategories(stats.Categories))

	case "digest":
		digest, err := proc.Digest(ctx)
		if err != nil {
			fmt.Printf("Error generating digest: %v\n", err)
			return false
		}
		if digest == "" {
			fmt.Println("No digest available (generation service returned nothing)")
			return false
		}
		fmt.Println("\n" + digest)

	case "send":
		runSend(ctx, proc, args)

	default:
		fmt.Println("Unknown command. Type 'help' for available options.")
	}

	return false
}

func runSend(ctx context.Context, proc *processor.Processor, args []string) {
	if len(args) < 3 {
		fmt.Println("Usage: send <draft-id> <recipient> [confirm]")
		return
	}
	draftID, recipient := args[1], args[2]
	confirm := len(args) > 3 && strings.EqualFold(args[3], "confirm")

	outcome, err := proc.SendDraftedEmail(ctx, draftID, recipient, confirm)
	if err != nil {
		if errors.Is(err, store.ErrDraftNotFound) {
			fmt.Printf("No draft found for %s\n", draftID)
		} else {
			fmt.Printf("Error sending draft: %v\n", err)
		}
		return
	}

	switch outcome.Status {
	case processor.OutcomePreview:
		fmt.Println("Preview (not sent, add 'confirm' to send):")
		fmt.Printf("To: %s\n", outcome.Preview.To)
		fmt.Printf("Subject: %s\n", outcome.Preview.Subject)
		fmt.Printf("\n%s\n", outcome.Preview.Body)
	case mailbox.StatusSent:
		fmt.Printf("Email sent (id %s)\n", outcome.Send.ID)
	default:
		fmt.Printf("Error sending email: %s\n", outcome.Send.Err)
	}
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  help             - Show this help message")
	fmt.Println("  exit             - Exit the program")
	fmt.Println("  process [limit]  - Process new emails")
	fmt.Println("  stats            - Show current email statistics")
	fmt.Println("  digest           - Generate a digest report of current statistics")
	fmt.Println("  send <id> <to> [confirm] - Preview or send a stored draft")
}

// formatCategories renders counts in a stable order, listing only the
// buckets present in the map.
func formatCategories(categories map[models.Category]int) string {
	parts := make([]string, 0, len(categories))
	for _, c := range models.AllCategories() {
		if count, ok := categories[c]; ok {
			parts = append(parts, fmt.Sprintf("%s: %d", c, count))
		}
	}
	return strings.Join(parts, ", ")
}
