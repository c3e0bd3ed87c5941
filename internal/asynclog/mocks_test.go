package asynclog

import (
	"os"
	"testing"

	"github.com/stretchr/testify/mock"
)

type mockOsProvider struct {
	mock.Mock
}

func newMockOsProvider(t *testing.T) *mockOsProvider {
	t.Helper()

	m := &mockOsProvider{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockOsProvider) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	args := m.Called(name, flag, perm)

	f, _ := args.Get(0).(*os.File)

	return f, args.Error(1)
}

type mockUnixProvider struct {
	mock.Mock
}

func newMockUnixProvider(t *testing.T) *mockUnixProvider {
	t.Helper()

	m := &mockUnixProvider{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockUnixProvider) Pwrite(fd int, p []byte, offset int64) (int, error) {
	args := m.Called(fd, p, offset)

	return args.Int(0), args.Error(1)
}

func (m *mockUnixProvider) Fdatasync(fd int) error {
	args := m.Called(fd)

	return args.Error(0)
}
