package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/davidnmbond/Spectrograph/internal/capture"
	"github.com/davidnmbond/Spectrograph/internal/session"
	"github.com/gdamore/tcell/v2"
)

var (
	indexStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(4)
	nameStyle    = lipgloss.NewStyle().Bold(true)
	defaultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func main() {
	deviceIndex := 0
	if len(os.Args) > 1 {
		arg := os.Args[1]
		if arg == "list" {
			if err := listDevices(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// Anything unparseable falls back to the default device.
		if n, err := strconv.Atoi(arg); err == nil && n >= 0 {
			deviceIndex = n
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sess, err := session.New(screen)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stream, err := capture.Open(deviceIndex, sess.HandleBlock)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Any key press ends the session.
	sess.Run()

	stream.Close()
	screen.Fini()

	fmt.Printf("dc offset %+.6f\n", sess.DCOffset())
	if n := sess.Dropped(); n > 0 {
		fmt.Fprintf(os.Stderr, "dropped %d audio blocks\n", n)
	}
}

func listDevices() error {
	devices, err := capture.Devices()
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		fmt.Println("no capture devices found")
		return nil
	}
	for _, d := range devices {
		mark := "  "
		if d.Default {
			mark = defaultStyle.Render("* ")
		}
		fmt.Printf("%s%s%s\n", indexStyle.Render(strconv.Itoa(d.Index)), mark, nameStyle.Render(d.Name))
	}
	return nil
}
