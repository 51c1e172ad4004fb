package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/dailyjournal/internal/client/client"
	"github.com/dmitrijs2005/dailyjournal/internal/client/repositories/pushlog"
	"github.com/dmitrijs2005/dailyjournal/internal/client/services"
	"github.com/dmitrijs2005/dailyjournal/internal/client/viewstate"
	"github.com/dmitrijs2005/dailyjournal/internal/logging"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

var errNoMirror = errors.New("remote mirror is not configured")

// Deps are the collaborators an App drives. Holder is required; the rest may
// be nil when the corresponding feature is not configured.
type Deps struct {
	Holder   *viewstate.Holder
	Mirror   client.Client
	Syncer   services.SyncService
	Exporter services.ExportService
	PushLog  pushlog.Repository
	Logger   logging.Logger

	// SyncSchedule is the cron spec used by "sync --watch".
	SyncSchedule string
	// CommandTimeout bounds each command; zero means no deadline.
	CommandTimeout time.Duration
}

type App struct {
	Deps
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewApp builds an App reading from in and writing to out.
func NewApp(d Deps, in io.Reader, out io.Writer) *App {
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = isTerminal(int(f.Fd()))
	}
	return &App{Deps: d, reader: bufio.NewReader(in), out: out, interactive: interactive}
}

// withTimeout applies CommandTimeout to ctx.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.CommandTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.CommandTimeout)
}

// Close releases the mirror connection, if any.
func (a *App) Close() error {
	if a.Mirror == nil {
		return nil
	}
	return a.Mirror.Close()
}
