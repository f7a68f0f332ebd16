package modeldoc

import "fmt"

func errParse(cause error) error {
	return fmt.Errorf("modeldoc: parse error: %w", cause)
}

func errMissingEndpoints(portFrom, portTo string) error {
	return fmt.Errorf("modeldoc: connection %q -> %q names neither componentFrom nor componentTo", portFrom, portTo)
}

func errUnknownComponent(name string) error {
	return fmt.Errorf("modeldoc: unknown component %q", name)
}

func errUnknownPortName(component, port string) error {
	return fmt.Errorf("modeldoc: component %q has no port %q", component, port)
}
