package declarator

const (
	repositorySuffix       = "-local-api-gateway-repository"
	repositoryPolicySuffix = "-local-api-gateway-repository-policy"
	// The lifecycle policy's logical name uses underscores; existing stacks were
	// created under this name and renaming it would replace the resource.
	lifecyclePolicySuffix = "-local_api_gateway_repository-repo-lifecycle-policy"
	imageSuffix           = "-local-api-gateway-image"
	imageOutputSuffix     = "-local-api-gateway-image-name"
)

// RepositoryName returns the registry name, which doubles as its logical resource name.
func RepositoryName(stack string) string {
	return stack + repositorySuffix
}

// RepositoryPolicyResourceName returns the logical name of the access policy.
func RepositoryPolicyResourceName(stack string) string {
	return stack + repositoryPolicySuffix
}

// LifecyclePolicyResourceName returns the logical name of the expiration policy.
func LifecyclePolicyResourceName(stack string) string {
	return stack + lifecyclePolicySuffix
}

// ImageResourceName returns the logical name of the built image.
func ImageResourceName(stack string) string {
	return stack + imageSuffix
}

// ImageOutputKey returns the key under which the built image address is exported.
func ImageOutputKey(stack string) string {
	return stack + imageOutputSuffix
}
