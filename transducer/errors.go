package transducer

import "fmt"

func errReservedField(name string) error {
	return fmt.Errorf("transducer: field name %q is reserved", name)
}

func errFieldExists(name string) error {
	return fmt.Errorf("transducer: field %q already registered", name)
}
