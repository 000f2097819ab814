package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/faasbench/internal/adapters/storage"
	"go.trai.ch/faasbench/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestNewGCS_Emulator(t *testing.T) {
	t.Parallel()
	log := mocks.NewMockLogger(gomock.NewController(t))

	st, err := storage.NewGCS(context.Background(), storage.GCSOptions{
		ProjectID: "bench-project",
		Endpoint:  "http://127.0.0.1:4443/storage/v1/",
	}, log)
	require.NoError(t, err)
	require.NoError(t, st.Close())
}
