package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/rojo-rbx/rokit/internal/tool"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// installProgress reports one spinner bar per in-flight install on a TTY,
// or a plain start/done line otherwise.
type installProgress struct {
	mu       sync.Mutex
	w        io.Writer
	isTTY    bool
	progress *mpb.Progress
	bars     map[tool.ToolSpec]*mpb.Bar
}

func newInstallProgress(w io.Writer) *installProgress {
	isTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	p := &installProgress{w: w, isTTY: isTTY, bars: make(map[tool.ToolSpec]*mpb.Bar)}
	if isTTY {
		p.progress = mpb.New(mpb.WithOutput(w), mpb.WithWidth(40))
	}
	return p
}

func (p *installProgress) onStart(spec tool.ToolSpec) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isTTY {
		fmt.Fprintf(p.w, "  installing %s\n", spec)
		return
	}
	bar, _ := p.progress.Add(0,
		mpb.SpinnerStyle(spinnerFrames...).Build(),
		mpb.BarFillerClearOnComplete(),
		mpb.PrependDecorators(decor.Name(fmt.Sprintf("  %s ", spec), decor.WC{W: 30, C: decor.DindentRight})),
		mpb.AppendDecorators(
			decor.Elapsed(decor.ET_STYLE_GO, decor.WC{W: 8}),
			decor.OnComplete(decor.Name(""), " done"),
		),
	)
	p.bars[spec] = bar
}

func (p *installProgress) onFinish(spec tool.ToolSpec, installed bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isTTY {
		status := "installed"
		if err != nil {
			status = "failed: " + err.Error()
		} else if !installed {
			status = "up to date"
		}
		fmt.Fprintf(p.w, "  %s %s\n", spec, status)
		return
	}
	if bar, ok := p.bars[spec]; ok {
		if err != nil {
			bar.Abort(true)
		} else {
			bar.SetTotal(1, true)
		}
		delete(p.bars, spec)
	}
}

func (p *installProgress) wait() {
	if p.progress != nil {
		p.progress.Wait()
	}
}
