package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"ftledit/blueprints"
	"ftledit/codec"
	"ftledit/types"
)

// document is one decoded save file.  Exactly one of profile and game is set.
type document struct {
	path    string
	kind    codec.Kind
	version int32

	profile *types.Profile
	game    *types.SavedGame
	catalog codec.ShipCatalog
}

// resolve puts relative names in the save directory.
func (a *app) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.cfg.Dir, name)
}

func (a *app) catalog() (*blueprints.Catalog, error) {
	catalog, err := blueprints.Load(a.cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("blueprint data: %w", err)
	}
	return catalog, nil
}

// load reads and decodes a file.  Nothing is kept from a file that fails to decode.
func (a *app) load(name string) (*document, error) {
	path := a.resolve(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	kind, version, err := codec.DetectFile(path, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	d := &document{path: path, kind: kind, version: version}
	if kind == codec.KindProfile {
		d.profile, err = codec.DecodeProfile(data)
	} else {
		var catalog *blueprints.Catalog
		catalog, err = a.catalog()
		if err != nil {
			return nil, err
		}
		d.catalog = catalog
		d.game, err = codec.DecodeSavedGame(data, catalog)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	a.log.Debug("loaded", zap.String("file", path), zap.Stringer("kind", kind), zap.Int32("version", version))
	return d, nil
}

func (d *document) encode() ([]byte, error) {
	if d.profile != nil {
		return codec.EncodeProfile(d.profile)
	}
	return codec.EncodeSavedGame(d.game, d.catalog)
}

func (d *document) value() any {
	if d.profile != nil {
		return d.profile
	}
	return d.game
}

// save writes the document to out, or back over the file it came from when out is
// empty.  The data goes to a temporary file in the target directory first, so a
// failed write leaves the old file alone.  Overwriting keeps the old file as .old.
func (a *app) save(d *document, out string) error {
	data, err := d.encode()
	if err != nil {
		return err
	}

	target := d.path
	if out != "" {
		target = a.resolve(out)
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if out == "" {
		// This is a tool capable of completely trashing save files, so back up the old one
		backup := target + ".old"
		if err := os.Rename(target, backup); err != nil {
			return err
		}
		a.log.Info("backed up", zap.String("file", target), zap.String("backup", backup))
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return err
	}
	a.log.Info("written", zap.String("file", target), zap.Int("bytes", len(data)))
	return nil
}

func (d *document) mystery() []types.MysteryBytes {
	if d.profile != nil {
		return d.profile.Mystery
	}
	return d.game.Mystery
}
