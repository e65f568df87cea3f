package core

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatFieldsSorted(t *testing.T) {
	fields := map[string]string{
		"field2": "error2",
		"field1": "error1",
	}
	require.Equal(t, "[field1: error1, field2: error2]", FormatFields(fields))

	err := &InvalidDataError{Fields: fields}
	require.Equal(t, "invalid data: [field1: error1, field2: error2]", err.Error())
}

func TestErrorKinds(t *testing.T) {
	invalid := fmt.Errorf("admission: %w", NewInvalidData("hash", "hash is not valid"))
	require.True(t, IsInvalidData(invalid))
	require.False(t, IsNotFound(invalid))

	ide, ok := AsInvalidData(invalid)
	require.True(t, ok)
	reason, ok := ide.Reason("hash")
	require.True(t, ok)
	require.Equal(t, "hash is not valid", reason)
	_, ok = ide.Reason("signature")
	require.False(t, ok)

	notFound := &NotFoundError{Msg: "account not found"}
	require.True(t, IsNotFound(notFound))
	require.Equal(t, "not found: account not found", notFound.Error())

	other := wrapOther("failed to read account", io.ErrUnexpectedEOF)
	require.True(t, errors.Is(other, io.ErrUnexpectedEOF))
	require.False(t, IsInvalidData(other))
	var oe *OtherError
	require.True(t, errors.As(other, &oe))
}
