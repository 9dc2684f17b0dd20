// Command termput dumps decoded terminal input events, one per line.
// Useful for checking what a given terminal emulator actually reports.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/terminput"
)

func main() {
	escDelay := flag.Int("escdelay", 50, "escape disambiguation delay in ms")
	repeat := flag.Int("repeat", 40, "repeat detection window in ms")
	useTcell := flag.Bool("tcell", false, "drive input through a tcell screen")
	flag.Parse()

	opts := terminput.DecoderOptions{
		RepeatWindow: time.Duration(*repeat) * time.Millisecond,
	}

	var (
		stream *terminput.InputStream
		err    error
	)
	if *useTcell {
		screen, serr := tcell.NewScreen()
		if serr != nil {
			log.Fatalf("screen: %v", serr)
		}
		if serr := screen.Init(); serr != nil {
			log.Fatalf("screen init: %v", serr)
		}
		screen.EnableMouse()
		screen.EnablePaste()
		stream, err = terminput.Open(terminput.NewTcellDriver(screen), opts)
	} else {
		stream, err = terminput.OpenStdin(opts)
	}
	if err != nil {
		log.Fatalf("open input: %v", err)
	}
	defer stream.Close()

	stream.SetEscapeDelay(time.Duration(*escDelay) * time.Millisecond)

	// Raw mode, so \r\n for clean lines
	fmt.Print("press keys, Ctrl+C quits\r\n")

	for {
		ev, err := stream.NextEvent()
		var dec *terminput.DecodeError
		switch {
		case errors.As(err, &dec):
			fmt.Print(pad("decode-error") + dec.Error() + "\r\n")
			continue
		case errors.Is(err, io.EOF):
			return
		case err != nil:
			stream.Close()
			log.Fatalf("input: %v", err)
		}

		fmt.Print(describe(ev) + "\r\n")

		if kp, ok := ev.(terminput.KeyPress); ok {
			if kp.Modifiers.Has(terminput.ModCtrl) && kp.Key == terminput.Codepoint('c') {
				return
			}
		}
	}
}

// pad aligns columns by display width, not byte length
func pad(s string) string {
	return runewidth.FillRight(s, 14)
}

func describe(ev terminput.Event) string {
	switch ev := ev.(type) {
	case terminput.KeyPress:
		out := pad("key-press") + pad(ev.Modifiers.String()) + pad(ev.Key.String())
		if ev.IsRepeat {
			out += " repeat"
		}
		return out
	case terminput.KeyRelease:
		return pad("key-release") + pad(ev.Modifiers.String()) + pad(ev.Key.String())
	case terminput.Mouse:
		return pad("mouse") + pad(ev.Modifiers.String()) + pad(ev.Buttons.String()) +
			fmt.Sprintf("%d,%d", ev.X, ev.Y)
	case terminput.PasteBegin:
		return pad("paste-begin")
	case terminput.PasteEnd:
		return pad("paste-end")
	case terminput.Resize:
		return pad("resize") + fmt.Sprintf("%dx%d", ev.Width, ev.Height)
	default:
		return pad("unhandled")
	}
}
