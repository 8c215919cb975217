package codec

import (
	"maps"
	"slices"

	"ftledit/readers"
	"ftledit/tables"
	"ftledit/types"
	"ftledit/writers"
)

// The variable table is every known id's value in table order, with no ids on disk,
// then a counted list of whatever else the game has set.

func decodeStateVars(r *readers.Reader) (types.StateVars, error) {
	vars := types.StateVars{Known: make(map[string]int32, len(tables.StateVarIDs))}
	for _, id := range tables.StateVarIDs {
		r.Enter("%s", id)
		value, err := r.ReadInt()
		if err != nil {
			return vars, err
		}
		vars.Known[id] = value
		r.Leave()
	}
	var err error
	vars.Extra, err = readers.ReadList(r, "extra", func(r *readers.Reader) (types.StateVar, error) {
		var v types.StateVar
		var err error
		if v.ID, err = r.ReadString(); err != nil {
			return v, err
		}
		v.Value, err = r.ReadInt()
		return v, err
	})
	return vars, err
}

func encodeStateVars(w *writers.Writer, vars *types.StateVars) error {
	for _, id := range slices.Sorted(maps.Keys(vars.Known)) {
		if !tables.IsKnownStateVar(id) {
			return w.Mismatch("state variable %q has no fixed slot; it belongs in Extra", id)
		}
	}
	for _, id := range tables.StateVarIDs {
		w.WriteInt(vars.Known[id])
	}
	return writers.WriteList(w, "extra", vars.Extra, func(w *writers.Writer, v types.StateVar) error {
		w.WriteString(v.ID)
		w.WriteInt(v.Value)
		return nil
	})
}
