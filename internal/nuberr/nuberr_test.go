package nuberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserInput_Code(t *testing.T) {
	t.Parallel()

	err := UserInput("something failed", errors.New("underlying"))
	assert.Equal(t, 1, err.Code)
}

func TestError_WithUnderlying(t *testing.T) {
	t.Parallel()

	err := UserInput("bad shape", errors.New("expected WIDTH:HEIGHT"))
	assert.Equal(t, "bad shape: expected WIDTH:HEIGHT", err.Error())
}

func TestError_WithoutUnderlying(t *testing.T) {
	t.Parallel()

	err := UserInput("missing file", nil)
	assert.Equal(t, "missing file", err.Error())
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("root cause")
	err := UserInput("wrapper", underlying)
	assert.Equal(t, underlying, err.Unwrap())
}

func TestError_ErrorsIs(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	err := UserInput("wrapped sentinel", sentinel)
	assert.True(t, errors.Is(err, sentinel))
}

func TestError_ErrorsAs(t *testing.T) {
	t.Parallel()

	err := UserInput("bad range", errors.New("end before start"))
	wrapped := fmt.Errorf("command failed: %w", err)

	var target *Error
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, 1, target.Code)
	assert.Equal(t, "bad range", target.Message)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(UserInput("bad", nil)))
	assert.Equal(t, 1, ExitCode(errors.New("plain error")))
}

func TestError_ImplementsErrorInterface(t *testing.T) {
	t.Parallel()

	var _ error = (*Error)(nil)
	var err error = UserInput("test", nil)
	assert.Equal(t, "test", err.Error())
}
