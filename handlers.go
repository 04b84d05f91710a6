package ripple

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id     uint32
	remove func(id uint32)
}

// Remove unregisters the callback so it no longer fires. Calling Remove on a
// zero handle or more than once is a no-op.
func (h CallbackHandle) Remove() {
	if h.remove == nil {
		return
	}
	h.remove(h.id)
}

type handler[F any] struct {
	id uint32
	fn F
}

// handlerList is an ordered callback registry. Removal compacts the slice so
// iteration never sees nil entries.
type handlerList[F any] struct {
	items  []handler[F]
	nextID uint32
}

func (l *handlerList[F]) add(fn F) CallbackHandle {
	l.nextID++
	id := l.nextID
	l.items = append(l.items, handler[F]{id: id, fn: fn})
	return CallbackHandle{id: id, remove: l.removeID}
}

func (l *handlerList[F]) removeID(id uint32) {
	for i := range l.items {
		if l.items[i].id == id {
			copy(l.items[i:], l.items[i+1:])
			l.items[len(l.items)-1] = handler[F]{}
			l.items = l.items[:len(l.items)-1]
			return
		}
	}
}

func (l *handlerList[F]) len() int { return len(l.items) }
