package provider_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faasbench/internal/adapters/provider"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestCLI_Exists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		result  domain.CommandResult
		runErr  error
		want    domain.Existence
		wantErr bool
	}{
		{"found", domain.CommandResult{Stdout: "NAME fn"}, nil, domain.Found, false},
		{"not found", domain.CommandResult{ExitCode: 1, Stderr: `Error: function "fn" Not Found`}, nil, domain.NotFound, false},
		{"other failure", domain.CommandResult{ExitCode: 1, Stderr: "connection refused"}, nil, domain.ExistenceUnknown, true},
		{"not started", domain.CommandResult{}, errors.New("executable file not found"), domain.ExistenceUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runner := mocks.NewMockCommandRunner(gomock.NewController(t))
			runner.EXPECT().
				Run(gomock.Any(), domain.Command{Name: "fission", Args: []string{"function", "get", "--name", "fn"}, Env: []string{"KUBECONFIG=/tmp/k"}}).
				Return(tt.result, tt.runErr)

			cli := provider.CLI{Runner: runner, Binary: "fission", Env: []string{"KUBECONFIG=/tmp/k"}}
			got, err := cli.Exists(context.Background(), "get function", "function", "get", "--name", "fn")
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrExistenceCheckFailed)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCLI_Exec(t *testing.T) {
	t.Parallel()
	runner := mocks.NewMockCommandRunner(gomock.NewController(t))
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(domain.CommandResult{ExitCode: 2, Stderr: "quota exceeded"}, nil)

	cli := provider.CLI{Runner: runner, Binary: "kubeless"}
	_, err := cli.Exec(context.Background(), "deploy function", "function", "deploy", "fn")
	require.ErrorIs(t, err, domain.ErrDeployment)
	assert.ErrorContains(t, err, "deploy function")
}

func TestCLI_UpdateOrCreate(t *testing.T) {
	t.Parallel()

	update := []string{"trigger", "http", "update", "fn"}
	create := []string{"trigger", "http", "create", "fn"}

	tests := []struct {
		name     string
		results  []domain.CommandResult
		want     domain.Materialization
		wantErr  bool
		commands int
	}{
		{"updated", []domain.CommandResult{{}}, domain.MaterializedExisting, false, 1},
		{"created", []domain.CommandResult{{ExitCode: 1, Stderr: "trigger fn not found"}, {}}, domain.MaterializedCreated, false, 2},
		{"update fails", []domain.CommandResult{{ExitCode: 1, Stderr: "forbidden"}}, 0, true, 1},
		{"create fails", []domain.CommandResult{{ExitCode: 1, Stderr: "not found"}, {ExitCode: 1, Stderr: "forbidden"}}, 0, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runner := mocks.NewMockCommandRunner(gomock.NewController(t))
			var calls []any
			for i, res := range tt.results {
				args := update
				if i == 1 {
					args = create
				}
				calls = append(calls, runner.EXPECT().
					Run(gomock.Any(), domain.Command{Name: "kubeless", Args: args}).
					Return(res, nil))
			}
			gomock.InOrder(calls...)

			cli := provider.CLI{Runner: runner, Binary: "kubeless"}
			got, err := cli.UpdateOrCreate(context.Background(), "http trigger fn", update, create)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrDeployment)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
