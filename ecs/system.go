package ecs

// System is a unit of per-frame logic over the registry. Systems may keep
// small internal state between frames but never own entities; they only see
// them through the frame's Registry for the duration of Execute.
//
// Returning an error aborts the remaining systems of the frame.
type System interface {
	Execute(frame *UpdateFrame) error
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *UpdateFrame) error

func (f SystemFunc) Execute(frame *UpdateFrame) error {
	return f(frame)
}

// Named can be implemented by systems that want a stable name in stats and
// errors instead of their type name.
type Named interface {
	Name() string
}
