package domain

import "strings"

// FunctionNamePrefix marks functions deployed on shared Kubernetes platforms.
const FunctionNamePrefix = "faasbench-"

// FormatKubernetesName turns a name into a lowercase DNS-1123 label prefixed with
// FunctionNamePrefix. Dots and underscores become dashes.
func FormatKubernetesName(name string) string {
	name = strings.ToLower(name)
	name = strings.NewReplacer(".", "-", "_", "-").Replace(name)
	if !strings.HasPrefix(name, FunctionNamePrefix) {
		name = FunctionNamePrefix + name
	}
	if len(name) > 63 {
		name = strings.TrimRight(name[:63], "-")
	}
	return name
}

// FormatLambdaName turns a name into one accepted by AWS Lambda.
func FormatLambdaName(name string) string {
	return strings.NewReplacer(".", "_").Replace(name)
}

// FormatCloudFunctionName turns a name into one accepted by Google Cloud Functions.
func FormatCloudFunctionName(name string) string {
	name = strings.NewReplacer(".", "_", "-", "_").Replace(name)
	if name != "" && (name[0] < 'a' || name[0] > 'z') && (name[0] < 'A' || name[0] > 'Z') {
		name = "f" + name
	}
	return name
}
