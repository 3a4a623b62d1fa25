package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sweep-radar.klederson.com/internal/app"
	"sweep-radar.klederson.com/internal/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sweep-radar",
		Short: "Sweep Radar - terminal display for a servo-swept rangefinder",
		Long: `Sweep Radar reads "<angle>,<distance>" lines from a rangefinder on a
serial port (an ultrasonic sensor on a servo, typically driven by an
Arduino) and draws them on a half-circle radar with a sweeping beam and
fading echoes.

Use --demo to sweep a simulated field of obstacles without hardware.`,
		SilenceUsage: true,
		RunE:         run,
	}
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newSnapshotCmd(), newPortsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	if settings.LogFile != "" {
		f, err := tea.LogToFile(settings.LogFile, "sweep-radar")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	model, err := app.New(settings)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(settings.FPS),
	)

	// Start sources with reference to the tea program
	if err := model.StartSources(p); err != nil {
		model.StopSources()
		fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "Check the port and your permissions on it. Try one of:")
		fmt.Fprintln(os.Stderr, "  ./sweep-radar ports                 (list serial ports)")
		fmt.Fprintln(os.Stderr, "  ./sweep-radar --port /dev/ttyACM0")
		fmt.Fprintln(os.Stderr, "  ./sweep-radar --demo                (simulated data, no hardware needed)")
		return err
	}

	_, err = p.Run()
	model.StopSources()
	return err
}
