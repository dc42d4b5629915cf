// Package marshaller defines the serialization interface shared by the format packages.
package marshaller

// Marshaller serializes and deserializes values of type T.
type Marshaller[T any] interface {
	// Marshal serializes model into a string.
	Marshal(model T) (string, error)
	// Unmarshal deserializes data into model.
	Unmarshal(data []byte, model *T) error
}
