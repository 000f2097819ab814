package aws_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewayv2"
	gatewaytypes "github.com/aws/aws-sdk-go-v2/service/apigatewayv2/types"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faasbench/internal/adapters/provider/aws"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const functionARN = "arn:aws:lambda:us-east-1:123456789012:function:bench"

type fakeLambda struct {
	functions   map[string]*lambdatypes.FunctionConfiguration
	created     *lambda.CreateFunctionInput
	updated     *lambda.UpdateFunctionCodeInput
	permissions []*lambda.AddPermissionInput
	invoke      *lambda.InvokeOutput
}

func (f *fakeLambda) GetFunction(_ context.Context, in *lambda.GetFunctionInput, _ ...func(*lambda.Options)) (*lambda.GetFunctionOutput, error) {
	cfg, ok := f.functions[awssdk.ToString(in.FunctionName)]
	if !ok {
		return nil, &lambdatypes.ResourceNotFoundException{Message: awssdk.String("Function not found")}
	}
	return &lambda.GetFunctionOutput{Configuration: cfg}, nil
}

func (f *fakeLambda) CreateFunction(_ context.Context, in *lambda.CreateFunctionInput, _ ...func(*lambda.Options)) (*lambda.CreateFunctionOutput, error) {
	f.created = in
	f.functions[awssdk.ToString(in.FunctionName)] = &lambdatypes.FunctionConfiguration{
		FunctionArn: awssdk.String(functionARN),
		State:       lambdatypes.StatePending,
	}
	return &lambda.CreateFunctionOutput{FunctionArn: awssdk.String(functionARN)}, nil
}

func (f *fakeLambda) UpdateFunctionCode(_ context.Context, in *lambda.UpdateFunctionCodeInput, _ ...func(*lambda.Options)) (*lambda.UpdateFunctionCodeOutput, error) {
	f.updated = in
	return &lambda.UpdateFunctionCodeOutput{FunctionArn: awssdk.String(functionARN)}, nil
}

func (f *fakeLambda) AddPermission(_ context.Context, in *lambda.AddPermissionInput, _ ...func(*lambda.Options)) (*lambda.AddPermissionOutput, error) {
	f.permissions = append(f.permissions, in)
	return &lambda.AddPermissionOutput{}, nil
}

func (f *fakeLambda) Invoke(context.Context, *lambda.InvokeInput, ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	return f.invoke, nil
}

type fakeIAM struct {
	role     *iamtypes.Role
	attached []string
}

func (f *fakeIAM) GetRole(context.Context, *iam.GetRoleInput, ...func(*iam.Options)) (*iam.GetRoleOutput, error) {
	if f.role == nil {
		return nil, &iamtypes.NoSuchEntityException{Message: awssdk.String("role not found")}
	}
	return &iam.GetRoleOutput{Role: f.role}, nil
}

func (f *fakeIAM) CreateRole(_ context.Context, in *iam.CreateRoleInput, _ ...func(*iam.Options)) (*iam.CreateRoleOutput, error) {
	f.role = &iamtypes.Role{RoleName: in.RoleName, Arn: awssdk.String("arn:aws:iam::123456789012:role/" + awssdk.ToString(in.RoleName))}
	return &iam.CreateRoleOutput{Role: f.role}, nil
}

func (f *fakeIAM) AttachRolePolicy(_ context.Context, in *iam.AttachRolePolicyInput, _ ...func(*iam.Options)) (*iam.AttachRolePolicyOutput, error) {
	f.attached = append(f.attached, awssdk.ToString(in.PolicyArn))
	return &iam.AttachRolePolicyOutput{}, nil
}

type fakeGateway struct {
	apis    []gatewaytypes.Api
	created int
}

func (f *fakeGateway) GetApis(context.Context, *apigatewayv2.GetApisInput, ...func(*apigatewayv2.Options)) (*apigatewayv2.GetApisOutput, error) {
	return &apigatewayv2.GetApisOutput{Items: f.apis}, nil
}

func (f *fakeGateway) CreateApi(_ context.Context, in *apigatewayv2.CreateApiInput, _ ...func(*apigatewayv2.Options)) (*apigatewayv2.CreateApiOutput, error) {
	f.created++
	api := gatewaytypes.Api{
		ApiId:       awssdk.String("abc123"),
		Name:        in.Name,
		ApiEndpoint: awssdk.String("https://abc123.execute-api.us-east-1.amazonaws.com"),
	}
	f.apis = append(f.apis, api)
	return &apigatewayv2.CreateApiOutput{ApiId: api.ApiId, ApiEndpoint: api.ApiEndpoint}, nil
}

type fixture struct {
	client  *aws.Client
	config  *aws.Config
	lambda  *fakeLambda
	iam     *fakeIAM
	gateway *fakeGateway
	storage *mocks.MockStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	f := &fixture{
		config:  aws.NewConfig("", &aws.Credentials{AccessKey: "AKIA", SecretKey: "secret"}, &aws.Resources{}),
		lambda:  &fakeLambda{functions: map[string]*lambdatypes.FunctionConfiguration{}},
		iam:     &fakeIAM{},
		gateway: &fakeGateway{},
		storage: mocks.NewMockStorage(ctrl),
	}
	f.client = aws.NewClient(f.lambda, f.iam, f.gateway, f.storage, f.config, log).WithRoleSettle(0)
	return f
}

func deploySpec(t *testing.T, size int64) domain.DeploySpec {
	t.Helper()
	artifact := filepath.Join(t.TempDir(), "python-3.9.zip")
	require.NoError(t, os.WriteFile(artifact, []byte("zip"), 0o600))
	return domain.DeploySpec{
		Name:       "bench",
		Runtime:    "python3.9",
		Entrypoint: domain.DefaultEntrypoint,
		MemoryMB:   256,
		TimeoutSec: 60,
		Package:    &domain.CodePackage{ArtifactPath: artifact, Size: size},
	}
}

func TestClient_CreateMaterializesRole(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, existence, err := f.client.Describe(context.Background(), "bench")
	require.NoError(t, err)
	assert.Equal(t, domain.NotFound, existence)

	handle, err := f.client.Create(context.Background(), deploySpec(t, 3))
	require.NoError(t, err)
	assert.Equal(t, functionARN, handle.Identifier)

	assert.Len(t, f.iam.attached, 2)
	assert.Equal(t, "arn:aws:iam::123456789012:role/faasbench-lambda-role", f.config.AWSResources().LambdaRole)
	assert.Equal(t, []byte("zip"), f.lambda.created.Code.ZipFile)
	assert.Equal(t, lambdatypes.Runtime("python3.9"), f.lambda.created.Runtime)
	assert.Equal(t, int32(256), awssdk.ToInt32(f.lambda.created.MemorySize))

	_, outcome, err := f.client.EnsureLambdaRole(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.MaterializedExisting, outcome)
}

func TestClient_LargeArchiveGoesThroughBucket(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.iam.role = &iamtypes.Role{Arn: awssdk.String("arn:aws:iam::123456789012:role/existing")}

	f.storage.EXPECT().CreateOrReuseBucket(gomock.Any(), "faasbench-code").Return("faasbench-code-0123456789abcdef", nil)
	f.storage.EXPECT().Upload(gomock.Any(), "faasbench-code-0123456789abcdef", "bench/python-3.9.zip", gomock.Any()).Return(nil)

	_, err := f.client.Create(context.Background(), deploySpec(t, aws.DirectUploadBytes+1))
	require.NoError(t, err)
	assert.Nil(t, f.lambda.created.Code.ZipFile)
	assert.Equal(t, "bench/python-3.9.zip", awssdk.ToString(f.lambda.created.Code.S3Key))
	assert.Empty(t, f.iam.attached)
}

func TestClient_Update(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	handle, err := f.client.Update(context.Background(), domain.FunctionHandle{Name: "bench"}, deploySpec(t, 3))
	require.NoError(t, err)
	assert.Equal(t, functionARN, handle.Identifier)
	assert.Equal(t, "bench", awssdk.ToString(f.lambda.updated.FunctionName))
}

func TestClient_AttachHTTPTrigger(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	handle := domain.FunctionHandle{Name: "bench", Identifier: functionARN}

	spec, err := f.client.AttachTrigger(context.Background(), handle, domain.TriggerHTTP)
	require.NoError(t, err)
	assert.Equal(t, "https://abc123.execute-api.us-east-1.amazonaws.com", spec.URL)

	require.Len(t, f.lambda.permissions, 1)
	assert.Equal(t, "arn:aws:execute-api:us-east-1:123456789012:abc123/*/*", awssdk.ToString(f.lambda.permissions[0].SourceArn))
	assert.Contains(t, f.config.AWSResources().HTTPAPIs, "bench-http-api")

	_, err = f.client.AttachTrigger(context.Background(), handle, domain.TriggerHTTP)
	require.NoError(t, err)
	assert.Equal(t, 1, f.gateway.created)
}

func TestClient_AttachHTTPTrigger_MissingFunction(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.client.AttachTrigger(context.Background(), domain.FunctionHandle{Name: "bench"}, domain.TriggerHTTP)
	require.ErrorIs(t, err, domain.ErrDeployment)
	assert.Zero(t, f.gateway.created)
	assert.Empty(t, f.lambda.permissions)
}

func TestClient_EnsureHTTPAPI_FindsExisting(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.gateway.apis = []gatewaytypes.Api{{
		ApiId:       awssdk.String("xyz"),
		Name:        awssdk.String("bench-http-api"),
		ApiEndpoint: awssdk.String("https://xyz.execute-api.us-east-1.amazonaws.com"),
	}}

	api, outcome, err := f.client.EnsureHTTPAPI(context.Background(), "bench-http-api", functionARN)
	require.NoError(t, err)
	assert.Equal(t, domain.MaterializedExisting, outcome)
	assert.Equal(t, "arn:aws:execute-api:us-east-1:123456789012:xyz", api.ARN)
	assert.Zero(t, f.gateway.created)
}

func TestClient_Ready(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	handle := domain.FunctionHandle{Name: "bench"}
	cfg := &lambdatypes.FunctionConfiguration{State: lambdatypes.StatePending}
	f.lambda.functions["bench"] = cfg

	ready, err := f.client.Ready(context.Background(), handle)
	require.NoError(t, err)
	assert.False(t, ready)

	cfg.State = lambdatypes.StateActive
	cfg.LastUpdateStatus = lambdatypes.LastUpdateStatusInProgress
	ready, err = f.client.Ready(context.Background(), handle)
	require.NoError(t, err)
	assert.False(t, ready)

	cfg.LastUpdateStatus = lambdatypes.LastUpdateStatusSuccessful
	ready, err = f.client.Ready(context.Background(), handle)
	require.NoError(t, err)
	assert.True(t, ready)

	cfg.State = lambdatypes.StateFailed
	cfg.StateReason = awssdk.String("role cannot be assumed")
	_, err = f.client.Ready(context.Background(), handle)
	require.ErrorIs(t, err, domain.ErrDeployment)
}

func TestClient_InvokeLibrary(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.lambda.invoke = &lambda.InvokeOutput{StatusCode: 200, Payload: []byte(`{"statusCode":200}`)}
	out, err := f.client.InvokeLibrary(context.Background(), "bench", []byte(`{}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"statusCode":200}`, string(out))

	f.lambda.invoke = &lambda.InvokeOutput{StatusCode: 200, FunctionError: awssdk.String("Unhandled"), Payload: []byte(`{"errorMessage":"boom"}`)}
	_, err = f.client.InvokeLibrary(context.Background(), "bench", []byte(`{}`))
	require.Error(t, err)
}
