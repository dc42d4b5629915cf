package v1alpha1_test

import (
	"strings"
	"testing"

	"github.com/local-api-gateway/infra/pkg/apis/stack/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStackName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "simple", input: "dev"},
		{name: "with dash", input: "prod-eu"},
		{name: "with dot and underscore", input: "team.a_prod"},
		{name: "digits", input: "42"},
		{name: "empty", input: "", wantErr: v1alpha1.ErrStackNameEmpty},
		{name: "uppercase", input: "Dev", wantErr: v1alpha1.ErrStackNameInvalid},
		{name: "leading dash", input: "-dev", wantErr: v1alpha1.ErrStackNameInvalid},
		{name: "double separator", input: "dev--eu", wantErr: v1alpha1.ErrStackNameInvalid},
		{name: "slash", input: "org/dev", wantErr: v1alpha1.ErrStackNameInvalid},
		{
			name:    "too long",
			input:   strings.Repeat("a", v1alpha1.StackNameMaxLength+1),
			wantErr: v1alpha1.ErrStackNameInvalid,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := v1alpha1.ValidateStackName(testCase.input)
			if testCase.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestNewStackConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := v1alpha1.NewStackConfig("dev")

	assert.Equal(t, "dev", cfg.Name)
	assert.Equal(t, "../", cfg.BuildContext)
	assert.Equal(t, "../Dockerfile", cfg.Dockerfile)
	assert.Empty(t, cfg.Region)
	assert.Empty(t, cfg.Platform)
	require.NoError(t, cfg.Validate())
}

func TestWithDefaultsKeepsExplicitValues(t *testing.T) {
	t.Parallel()

	cfg := v1alpha1.StackConfig{Name: "dev", BuildContext: "app", Dockerfile: ""}.WithDefaults()

	assert.Equal(t, "app", cfg.BuildContext)
	assert.Equal(t, v1alpha1.DefaultDockerfile, cfg.Dockerfile)
}

func TestValidateRejectsEmptyBuildInputs(t *testing.T) {
	t.Parallel()

	cfg := v1alpha1.NewStackConfig("dev")
	cfg.BuildContext = ""
	require.ErrorIs(t, cfg.Validate(), v1alpha1.ErrBuildContextEmpty)

	cfg = v1alpha1.NewStackConfig("dev")
	cfg.Dockerfile = ""
	require.ErrorIs(t, cfg.Validate(), v1alpha1.ErrDockerfileEmpty)
}
