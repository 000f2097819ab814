package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewayv2"
	gatewaytypes "github.com/aws/aws-sdk-go-v2/service/apigatewayv2/types"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"go.trai.ch/faasbench/internal/adapters/provider"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/zerr"
)

// RoleName is the execution role shared by all benchmark functions.
const RoleName = "faasbench-lambda-role"

// RoleSettle is how long a new role takes to become assumable by Lambda.
const RoleSettle = 10 * time.Second

const assumeRolePolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": {"Service": "lambda.amazonaws.com"},
      "Action": "sts:AssumeRole"
    }
  ]
}`

var rolePolicies = []string{
	"arn:aws:iam::aws:policy/AmazonS3FullAccess",
	"arn:aws:iam::aws:policy/service-role/AWSLambdaBasicExecutionRole",
}

// EnsureLambdaRole returns the ARN of the execution role, creating the role
// and attaching its policies when absent.
func (c *Client) EnsureLambdaRole(ctx context.Context) (string, domain.Materialization, error) {
	res := c.config.AWSResources()
	if res.LambdaRole != "" {
		return res.LambdaRole, domain.MaterializedExisting, nil
	}

	out, err := c.iam.GetRole(ctx, &iam.GetRoleInput{RoleName: awssdk.String(RoleName)})
	if err == nil {
		res.LambdaRole = awssdk.ToString(out.Role.Arn)
		c.logger.Info(fmt.Sprintf("using existing lambda role %s", RoleName))
		return res.LambdaRole, domain.MaterializedExisting, nil
	}
	var missing *iamtypes.NoSuchEntityException
	if !errors.As(err, &missing) {
		return "", 0, errors.Join(domain.ErrExistenceCheckFailed, zerr.With(zerr.Wrap(err, "get role"), "role", RoleName))
	}

	created, err := c.iam.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 awssdk.String(RoleName),
		AssumeRolePolicyDocument: awssdk.String(assumeRolePolicy),
	})
	if err != nil {
		return "", 0, provider.ResourceCreation(err, "lambda role", RoleName)
	}
	for _, policy := range rolePolicies {
		_, err := c.iam.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
			RoleName:  awssdk.String(RoleName),
			PolicyArn: awssdk.String(policy),
		})
		if err != nil {
			return "", 0, provider.ResourceCreation(zerr.With(err, "policy", policy), "lambda role", RoleName)
		}
	}
	res.LambdaRole = awssdk.ToString(created.Role.Arn)
	c.logger.Info(fmt.Sprintf("created lambda role %s", RoleName))

	if err := c.waiter.Delay(ctx, c.roleSettle, "role "+RoleName); err != nil {
		return "", 0, err
	}
	return res.LambdaRole, domain.MaterializedCreated, nil
}

// EnsureHTTPAPI returns the HTTP API named name, quick-creating one that routes
// every request to functionARN when absent.
func (c *Client) EnsureHTTPAPI(ctx context.Context, name, functionARN string) (HTTPAPI, domain.Materialization, error) {
	res := c.config.AWSResources()
	if api, ok := res.HTTPAPIs[name]; ok {
		return api, domain.MaterializedExisting, nil
	}

	existing, found, err := c.findAPI(ctx, name)
	if err != nil {
		return HTTPAPI{}, 0, err
	}
	if found {
		api := c.httpAPI(existing.ApiId, existing.ApiEndpoint, functionARN)
		res.HTTPAPIs[name] = api
		c.logger.Info(fmt.Sprintf("using existing http api %s", name))
		return api, domain.MaterializedExisting, nil
	}

	out, err := c.gateway.CreateApi(ctx, &apigatewayv2.CreateApiInput{
		Name:         awssdk.String(name),
		ProtocolType: gatewaytypes.ProtocolTypeHttp,
		Target:       awssdk.String(functionARN),
	})
	if err != nil {
		return HTTPAPI{}, 0, provider.ResourceCreation(err, "http api", name)
	}
	api := c.httpAPI(out.ApiId, out.ApiEndpoint, functionARN)

	_, err = c.lambda.AddPermission(ctx, &lambda.AddPermissionInput{
		FunctionName: awssdk.String(functionARN),
		StatementId:  awssdk.String("faasbench-http-" + awssdk.ToString(out.ApiId)),
		Action:       awssdk.String("lambda:InvokeFunction"),
		Principal:    awssdk.String("apigateway.amazonaws.com"),
		SourceArn:    awssdk.String(api.ARN + "/*/*"),
	})
	var conflict *lambdatypes.ResourceConflictException
	if err != nil && !errors.As(err, &conflict) {
		return HTTPAPI{}, 0, provider.ResourceCreation(err, "http api permission", name)
	}

	res.HTTPAPIs[name] = api
	c.logger.Info(fmt.Sprintf("created http api %s at %s", name, api.Endpoint))
	return api, domain.MaterializedCreated, nil
}

func (c *Client) findAPI(ctx context.Context, name string) (gatewaytypes.Api, bool, error) {
	in := &apigatewayv2.GetApisInput{}
	for {
		out, err := c.gateway.GetApis(ctx, in)
		if err != nil {
			return gatewaytypes.Api{}, false,
				errors.Join(domain.ErrExistenceCheckFailed, zerr.With(zerr.Wrap(err, "get apis"), "api", name))
		}
		for _, api := range out.Items {
			if awssdk.ToString(api.Name) == name {
				return api, true, nil
			}
		}
		if awssdk.ToString(out.NextToken) == "" {
			return gatewaytypes.Api{}, false, nil
		}
		in.NextToken = out.NextToken
	}
}

// httpAPI builds the execute-api ARN from the account of the function ARN,
// arn:aws:lambda:<region>:<account>:function:<name>.
func (c *Client) httpAPI(id, endpoint *string, functionARN string) HTTPAPI {
	account := ""
	if parts := strings.Split(functionARN, ":"); len(parts) > 4 {
		account = parts[4]
	}
	return HTTPAPI{
		ARN:      fmt.Sprintf("arn:aws:execute-api:%s:%s:%s", c.config.Region(), account, awssdk.ToString(id)),
		Endpoint: awssdk.ToString(endpoint),
	}
}
