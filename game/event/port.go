package event

//go:generate go tool mockgen -destination=../mocks/port_mock.go -package=mocks . Port

// Port is an outbound sink. The controller only ever sends to it.
type Port interface {
	Send(e Event)
}

// PortFunc adapts a function to a Port.
type PortFunc func(e Event)

var _ Port = PortFunc(nil)

func (f PortFunc) Send(e Event) {
	f(e)
}

// Discard drops every event.
var Discard Port = PortFunc(func(Event) {})

// Tee returns a Port that forwards each event to every port in order.
func Tee(ports ...Port) Port {
	return PortFunc(func(e Event) {
		for _, p := range ports {
			p.Send(e)
		}
	})
}
