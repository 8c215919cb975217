package codec

import (
	"ftledit/readers"
	"ftledit/types"
	"ftledit/writers"
)

// Format 2 stores always have two shelves and don't say so.
const fixedShelfCount = 2

// Shelf slot availability values.
const (
	slotEmpty   = -1
	slotSold    = 0
	slotForSale = 1
)

func storeItemOpaqueLen(f SavedGameFeatures) int {
	if f.StoreItemExtra {
		return 1
	}
	return 0
}

func decodeStore(r *readers.Reader, f SavedGameFeatures) (*types.StoreState, error) {
	s := &types.StoreState{}
	shelves := fixedShelfCount
	if f.Extended {
		var err error
		if shelves, err = r.ReadCount(); err != nil {
			return nil, err
		}
	}
	var err error
	s.Shelves, err = readers.ReadRepeated(r, "shelf", shelves, func(r *readers.Reader) (types.StoreShelf, error) {
		return decodeShelf(r, f)
	})
	if err != nil {
		return nil, err
	}
	if err := r.ReadIntsInto(&s.Fuel, &s.Missiles, &s.DroneParts); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeShelf(r *readers.Reader, f SavedGameFeatures) (types.StoreShelf, error) {
	var shelf types.StoreShelf
	itemType, err := r.ReadInt()
	if err != nil {
		return shelf, err
	}
	shelf.ItemType = types.StoreItemType(itemType)
	for i := range shelf.Items {
		r.Enter("item[%d]", i)
		start := r.Offset()
		avail, err := r.ReadInt()
		if err != nil {
			return shelf, err
		}
		switch avail {
		case slotEmpty:
		case slotSold, slotForSale:
			item := &types.StoreItem{Available: avail == slotForSale}
			if item.ItemID, err = r.ReadString(); err != nil {
				return shelf, err
			}
			item.Opaque = make([]int32, storeItemOpaqueLen(f))
			for j := range item.Opaque {
				if item.Opaque[j], err = r.ReadInt(); err != nil {
					return shelf, err
				}
			}
			shelf.Items[i] = item
		default:
			return shelf, &types.StructuralMismatchError{Path: r.Path(), Offset: start, Detail: "unknown store slot availability"}
		}
		r.Leave()
	}
	return shelf, nil
}

func encodeStore(w *writers.Writer, f SavedGameFeatures, s *types.StoreState) error {
	if f.Extended {
		w.WriteCount(len(s.Shelves))
	} else if len(s.Shelves) != fixedShelfCount {
		return w.Mismatch("%d store shelves, format 2 stores have exactly %d", len(s.Shelves), fixedShelfCount)
	}
	err := writers.WriteRepeated(w, "shelf", s.Shelves, func(w *writers.Writer, shelf types.StoreShelf) error {
		w.WriteInt(int32(shelf.ItemType))
		for i, item := range shelf.Items {
			if item == nil {
				w.WriteInt(slotEmpty)
				continue
			}
			if len(item.Opaque) != storeItemOpaqueLen(f) {
				w.Enter("item[%d]", i)
				return w.Mismatch("store item has %d opaque values, format wants %d", len(item.Opaque), storeItemOpaqueLen(f))
			}
			if item.Available {
				w.WriteInt(slotForSale)
			} else {
				w.WriteInt(slotSold)
			}
			w.WriteString(item.ItemID)
			w.WriteIntFields(item.Opaque...)
		}
		return nil
	})
	if err != nil {
		return err
	}
	w.WriteIntFields(s.Fuel, s.Missiles, s.DroneParts)
	return nil
}
