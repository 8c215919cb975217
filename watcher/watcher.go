// Package watcher keeps an eye on the save directory and checks every profile and
// saved game the game writes.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"ftledit/codec"
	"ftledit/tables"
)

// Report is the outcome of checking one save file.
type Report struct {
	File     string
	Kind     codec.Kind
	Version  int32
	Fidelity codec.Fidelity
	Summary  string
	Err      error
}

type Watcher interface {
	Start(reports chan<- *Report) error
	Stop()
}

// New returns a watcher for dir.  settle is how long to wait after a write before
// reading the file, so the game has finished with it.
func New(dir string, catalog codec.ShipCatalog, log *zap.Logger, settle time.Duration) Watcher {
	return &dirWatcher{
		dir:     dir,
		catalog: catalog,
		log:     log,
		settle:  settle,
		seen:    map[string][32]byte{},
	}
}

type dirWatcher struct {
	dir     string
	catalog codec.ShipCatalog
	log     *zap.Logger
	settle  time.Duration

	watcher *fsnotify.Watcher
	quit    chan struct{}
	done    sync.WaitGroup

	// hash of the last version of each file that was checked
	seen map[string][32]byte
}

func (dw *dirWatcher) Start(reports chan<- *Report) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dw.watcher = watcher
	dw.quit = make(chan struct{})

	dw.done.Add(1)
	go func() {
		defer dw.done.Done()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if codec.KindForFileName(event.Name) == codec.KindUnknown {
					continue
				}
				dw.log.Debug("save file written", zap.String("file", event.Name), zap.Stringer("op", event.Op))
				if report := dw.handleFile(event.Name); report != nil {
					select {
					case reports <- report:
					case <-dw.quit:
						return
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				dw.log.Error("watch failed", zap.Error(err))
			}
		}
	}()

	err = dw.watcher.Add(dw.dir)
	if err != nil {
		dw.watcher.Close()
		dw.done.Wait()
		return err
	}
	dw.log.Info("watching", zap.String("dir", dw.dir))
	return nil
}

// Stop returns once the event loop has finished.
func (dw *dirWatcher) Stop() {
	close(dw.quit)
	dw.watcher.Close()
	dw.done.Wait()
}

// handleFile checks one file.  It returns nil when the file is unchanged since the
// last check, so the several write events the game makes per save give one report.
func (dw *dirWatcher) handleFile(filename string) *Report {
	// Wait for the game itself to finish with the file
	time.Sleep(dw.settle)

	report := &Report{File: filepath.Base(filename)}
	data, err := os.ReadFile(filename)
	if err != nil {
		report.Err = err
		dw.log.Warn("failed to load file", zap.String("file", filename), zap.Error(err))
		return report
	}

	report.Kind, report.Version, err = codec.DetectFile(filename, data)
	if err == nil {
		report.Summary, report.Fidelity, err = dw.check(report.Kind, data)
	}
	if err != nil {
		report.Err = err
		dw.log.Warn("failed to parse file", zap.String("file", filename), zap.Error(err))
		return report
	}

	if last, ok := dw.seen[filename]; ok && last == report.Fidelity.OriginalHash {
		dw.log.Debug("unchanged", zap.String("file", filename))
		return nil
	}
	dw.seen[filename] = report.Fidelity.OriginalHash

	fields := []zap.Field{
		zap.String("file", report.File),
		zap.Stringer("kind", report.Kind),
		zap.Int32("version", report.Version),
		zap.String("summary", report.Summary),
	}
	if report.Fidelity.Identical {
		dw.log.Info("checked", fields...)
	} else {
		dw.log.Warn("re-encoding differs", append(fields, zap.Int64("first_difference", report.Fidelity.FirstDifference))...)
	}
	return report
}

func (dw *dirWatcher) check(kind codec.Kind, data []byte) (string, codec.Fidelity, error) {
	if kind == codec.KindProfile {
		p, fidelity, err := codec.VerifyProfile(data)
		if err != nil {
			return "", fidelity, err
		}
		ships := 0
		for _, u := range p.ShipUnlocks {
			if u.UnlockedA {
				ships++
			}
		}
		return fmt.Sprintf("%d/%d achievements, %d ships", len(p.Achievements), len(tables.Achievements), ships), fidelity, nil
	}

	g, fidelity, err := codec.VerifySavedGame(data, dw.catalog)
	if err != nil {
		return "", fidelity, err
	}
	ship := &g.PlayerShip
	return fmt.Sprintf("%s (%s) sector %d, hull %d, scrap %d", ship.Name, g.Difficulty, g.OneBasedSectorNumber, ship.Hull, ship.Scrap), fidelity, nil
}
