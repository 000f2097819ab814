package gcp

import (
	"context"

	"google.golang.org/api/cloudfunctions/v1"
	"google.golang.org/api/option"
)

// invokerRole lets anonymous callers reach the HTTPS trigger.
const invokerRole = "roles/cloudfunctions.invoker"

// FunctionsAPI is the subset of the Cloud Functions v1 API the client uses.
type FunctionsAPI interface {
	Get(ctx context.Context, name string) (*cloudfunctions.CloudFunction, error)
	Create(ctx context.Context, location string, fn *cloudfunctions.CloudFunction) error
	Patch(ctx context.Context, name string, fn *cloudfunctions.CloudFunction, mask string) error
	AllowUnauthenticated(ctx context.Context, name string) error
	Call(ctx context.Context, name, data string) (*cloudfunctions.CallFunctionResponse, error)
}

type serviceAPI struct {
	functions *cloudfunctions.ProjectsLocationsFunctionsService
}

// NewFunctionsAPI connects to the Cloud Functions API.
func NewFunctionsAPI(ctx context.Context, opts ...option.ClientOption) (FunctionsAPI, error) {
	svc, err := cloudfunctions.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &serviceAPI{functions: svc.Projects.Locations.Functions}, nil
}

func (a *serviceAPI) Get(ctx context.Context, name string) (*cloudfunctions.CloudFunction, error) {
	return a.functions.Get(name).Context(ctx).Do()
}

// Create and Patch return once the long running operation was accepted.
// Completion is observed through the function status.
func (a *serviceAPI) Create(ctx context.Context, location string, fn *cloudfunctions.CloudFunction) error {
	_, err := a.functions.Create(location, fn).Context(ctx).Do()
	return err
}

func (a *serviceAPI) Patch(ctx context.Context, name string, fn *cloudfunctions.CloudFunction, mask string) error {
	_, err := a.functions.Patch(name, fn).UpdateMask(mask).Context(ctx).Do()
	return err
}

func (a *serviceAPI) AllowUnauthenticated(ctx context.Context, name string) error {
	_, err := a.functions.SetIamPolicy(name, &cloudfunctions.SetIamPolicyRequest{
		Policy: &cloudfunctions.Policy{
			Bindings: []*cloudfunctions.Binding{{Role: invokerRole, Members: []string{"allUsers"}}},
		},
	}).Context(ctx).Do()
	return err
}

func (a *serviceAPI) Call(ctx context.Context, name, data string) (*cloudfunctions.CallFunctionResponse, error) {
	return a.functions.Call(name, &cloudfunctions.CallFunctionRequest{Data: data}).Context(ctx).Do()
}
