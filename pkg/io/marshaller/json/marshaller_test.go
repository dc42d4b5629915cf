package jsonmarshaller_test

import (
	"testing"

	jsonmarshaller "github.com/local-api-gateway/infra/pkg/io/marshaller/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

func TestMarshalIndents(t *testing.T) {
	t.Parallel()

	got, err := jsonmarshaller.NewMarshaller[sample]().Marshal(sample{Name: "dev", Count: 1})

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"dev\",\n  \"count\": 1\n}\n", got)
}

func TestMarshalError(t *testing.T) {
	t.Parallel()

	_, err := jsonmarshaller.NewMarshaller[chan int]().Marshal(make(chan int))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal json")
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	mar := jsonmarshaller.NewMarshaller[sample]()

	var got sample

	require.NoError(t, mar.Unmarshal([]byte(`{"name":"prod"}`), &got))
	assert.Equal(t, sample{Name: "prod"}, got)

	require.Error(t, mar.Unmarshal([]byte(`{`), &got))
}
