package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"bedtime/internal/config"
	"bedtime/internal/console"
	"bedtime/internal/engine"
	"bedtime/internal/llm"
	"bedtime/internal/session"
	"bedtime/internal/story"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "bedtime",
		Short: "Cozy bedtime stories with a storyteller and a judge",
	}
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(tellCmd)
}

var (
	requestFlag string
	levelFlag   string
	showJudge   bool
	maxFlag     int
	reportPath  string
)

func init() {
	tellCmd.Flags().StringVarP(&requestFlag, "request", "r", "", "Story request (asked interactively when omitted)")
	tellCmd.Flags().StringVarP(&levelFlag, "level", "l", "", "Reading level: 1/beginner, 2/intermediate, 3/standard")
	tellCmd.Flags().BoolVar(&showJudge, "show-judge", false, "Show judge ratings and safety notes after every version")
	tellCmd.Flags().IntVar(&maxFlag, "max-customizations", 0, "Customization budget (overrides config)")
	tellCmd.Flags().StringVar(&reportPath, "report", "", "Write a JSON session transcript to this path")
}

var tellCmd = &cobra.Command{
	Use:   "tell",
	Short: "Generate a bedtime story and refine it interactively",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Startup check failed: %v", err)
		}

		storyClient, err := llm.NewClient(ctx, cfg, cfg.AI.Model)
		if err != nil {
			log.Fatalf("Failed to create storyteller client: %v", err)
		}
		judgeClient, err := llm.NewClient(ctx, cfg, cfg.AI.JudgeModel)
		if err != nil {
			log.Fatalf("Failed to create judge client: %v", err)
		}
		pipeline := engine.New(storyClient, judgeClient)
		term := console.New(os.Stdin, os.Stdout)

		term.Say("🌙 Welcome to the Bedtime Story Generator! 🌙\n")
		term.Say("This tool creates safe, cozy bedtime stories for kids ages 5–10.\n")

		req, err := readRequest(term)
		if err != nil {
			log.Fatalf("Failed to read story request: %v", err)
		}

		if !cmd.Flags().Changed("show-judge") {
			showJudge, err = term.YesNo("\nWould you like to see behind-the-scenes judge ratings and safety notes?\nThis is mostly for parents or adults. (y/n)")
			if err != nil {
				log.Fatalf("Failed to read answer: %v", err)
			}
		}

		term.Say("\nGenerating your story with our storyteller and judge...\n")
		text, verdict, err := pipeline.Run(ctx, req)
		if err != nil {
			log.Fatalf("Story generation failed: %v", err)
		}

		maxCustomizations := cfg.Session.MaxCustomizations
		if cmd.Flags().Changed("max-customizations") {
			maxCustomizations = maxFlag
		}
		sess := session.New(req, text, verdict, maxCustomizations)

		term.Say("========== YOUR BEDTIME STORY ==========\n")
		term.Say(sess.Story)
		term.Say("\n========================================\n")
		if showJudge {
			term.Say(session.JudgeSummary(sess))
		}

		var report *session.Report
		if reportPath != "" {
			report = session.NewReport(sess.ID)
			report.AddVersion("initial", sess)
		}

		loop := session.NewLoop(pipeline, term, showJudge, report)
		if err := loop.Run(ctx, sess); err != nil {
			log.Fatalf("Customization failed: %v", err)
		}

		if report != nil {
			if err := report.Save(reportPath, sess); err != nil {
				log.Fatalf("Failed to write session report: %v", err)
			}
			term.Say(fmt.Sprintf("\n📄 Session transcript written to %s", reportPath))
		}

		term.Say("\n🌟 Final story selected. Sweet dreams! 🌟")
	},
}

// readRequest resolves the story request and reading level from flags
// or interactively.
func readRequest(term *console.Terminal) (story.Request, error) {
	text := requestFlag
	if text == "" {
		var err error
		text, err = term.FreeText("What kind of bedtime story would you like? ")
		if err != nil {
			return story.Request{}, err
		}
	}

	if levelFlag != "" {
		level, err := story.ParseReadingLevel(levelFlag)
		if err != nil {
			return story.Request{}, err
		}
		return story.Request{Text: text, Level: level}, nil
	}

	key, err := term.Choose("Choose a reading level:", session.LevelOptions)
	if err != nil {
		return story.Request{}, err
	}
	level, err := story.ParseReadingLevel(key)
	if err != nil {
		return story.Request{}, err
	}
	return story.Request{Text: text, Level: level}, nil
}
