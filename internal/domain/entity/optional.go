package entity

// Optional marks a patch field as present or absent. The zero value is
// absent, so a zero-valued patch changes nothing.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// FromPtr is present when p is non-nil.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return Optional[T]{}
	}
	return Some(*p)
}

func (o Optional[T]) IsSet() bool { return o.set }

func (o Optional[T]) Get() (T, bool) { return o.value, o.set }

// OrElse returns the held value, or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// Ptr returns a pointer to a copy of the value, or nil when absent.
func (o Optional[T]) Ptr() *T {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}
