package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"platepal/internal/app"
	"platepal/internal/config"
	"platepal/internal/dining"
	"platepal/internal/logger"
	"platepal/internal/preferences"
	"platepal/internal/render"
	"platepal/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.LogEnv); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	application, closeBackend, err := app.Wire(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to wire application", zap.Error(err))
	}
	defer closeBackend()

	switch os.Args[1] {
	case "health":
		err = runHealth(ctx, application)
	case "plan":
		err = runPlan(ctx, application, os.Args[2:])
	case "suggest":
		err = runSuggest(ctx, application, os.Args[2:])
	case "halls":
		runHalls()
	case "map":
		err = runMap(os.Args[2:])
	case "tui":
		_, err = tea.NewProgram(tui.New(application.NewSession(nil)), tea.WithAltScreen()).Run()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func runHealth(ctx context.Context, a *app.App) error {
	st := a.NewSession(nil).Start(ctx)
	fmt.Printf("Nutrition server (%s): %s\n", a.Config().APIBaseURL, st.Status.Label())
	if st.Status != app.StatusConnected {
		return errors.New("nutrition server unreachable")
	}
	return nil
}

func runPlan(ctx context.Context, a *app.App, args []string) error {
	defaults := preferences.Default()

	cmd := flag.NewFlagSet("plan", flag.ExitOnError)
	calories := cmd.String("calories", defaults.Calories, "Target daily calories")
	protein := cmd.String("protein", defaults.Protein, "Protein share in percent")
	carbs := cmd.String("carbs", defaults.Carbs, "Carbs share in percent")
	fat := cmd.String("fat", defaults.Fat, "Fat share in percent")
	prefs := cmd.String("prefs", "", "Free-text food preferences")
	htmlOut := cmd.String("html", "", "Also write the plan as an HTML page to this file")
	flags := map[preferences.Restriction]*bool{}
	for _, r := range preferences.Restrictions {
		flags[r] = cmd.Bool(preferences.KebabCase(string(r)), false, preferences.Label(r))
	}
	cmd.Parse(args)

	s := a.NewSession(nil)
	s.Update(func(p preferences.Preferences) preferences.Preferences {
		p = p.WithCalories(*calories).WithProtein(*protein).WithCarbs(*carbs).WithFat(*fat).WithFoodPreferences(*prefs)
		for r, on := range flags {
			p = p.WithRestriction(r, *on)
		}
		return p
	})
	s.Start(ctx)

	st, err := s.Generate(ctx)
	if err != nil {
		if st.Alert != nil {
			return fmt.Errorf("%s: %s", st.Alert.Title, st.Alert.Message)
		}
		return err
	}
	s.Wait()
	st = s.Snapshot()

	view := render.Build(st.Result)
	fmt.Print(render.Text(view, st.Suggestions))

	if *htmlOut != "" {
		f, err := os.Create(*htmlOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", *htmlOut, err)
		}
		defer f.Close()
		if err := render.HTML(f, view, st.Suggestions); err != nil {
			return fmt.Errorf("failed to write %s: %w", *htmlOut, err)
		}
		fmt.Printf("\nHTML written to %s\n", *htmlOut)
	}
	return nil
}

func runSuggest(ctx context.Context, a *app.App, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return errors.New("usage: platepal suggest <text>")
	}
	list, err := a.Suggester().QuickSuggest(ctx, text)
	if err != nil {
		return err
	}
	for _, s := range list {
		fmt.Printf("• %s\n", s)
	}
	return nil
}

func runHalls() {
	for _, h := range dining.Catalog() {
		meters := dining.Distance(dining.CampusLat, dining.CampusLon, h.Lat, h.Lon)
		fmt.Printf("%s\n  %s\n  %s\n  ~%d min walk from campus center\n  %s\n\n",
			h.Name, h.Description, h.Hours, dining.WalkMinutes(meters), dining.Directions(h).Google)
	}
}

func runMap(args []string) error {
	cmd := flag.NewFlagSet("map", flag.ExitOnError)
	out := cmd.String("o", "dining_halls_map.html", "Output file")
	cmd.Parse(args)

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", *out, err)
	}
	defer f.Close()

	if err := dining.WriteMap(f, dining.Catalog()); err != nil {
		return err
	}
	fmt.Printf("Map written to %s\n", *out)
	return nil
}

func printUsage() {
	fmt.Println("Usage: platepal <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  health             Check that the nutrition server is reachable")
	fmt.Println("  plan               Generate a meal plan (see plan -h for flags)")
	fmt.Println("  suggest <text>     Quick suggestions for free-text preferences")
	fmt.Println("  halls              List dining halls with hours and directions")
	fmt.Println("  map [-o FILE]      Write an interactive dining hall map")
	fmt.Println("  tui                Interactive preferences form")
}
