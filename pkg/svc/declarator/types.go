package declarator

// Kind identifies the provider type a declaration maps to.
type Kind string

const (
	// KindRepository is a container registry repository.
	KindRepository Kind = "aws:ecr/repository:Repository"
	// KindRepositoryPolicy is the access policy of a repository.
	KindRepositoryPolicy Kind = "aws:ecr/repositoryPolicy:RepositoryPolicy"
	// KindLifecyclePolicy is the image expiration policy of a repository.
	KindLifecyclePolicy Kind = "aws:ecr/lifecyclePolicy:LifecyclePolicy"
	// KindImage is an image built from a local context and pushed to a repository.
	KindImage Kind = "awsx:ecr:Image"
	// KindOutput is a stack output.
	KindOutput Kind = "output"
)

// TagMutability controls whether pushing an existing tag overwrites it.
type TagMutability string

const (
	// TagMutable lets a re-pushed tag overwrite the previous image.
	TagMutable TagMutability = "MUTABLE"
	// TagImmutable rejects pushes of an existing tag.
	TagImmutable TagMutability = "IMMUTABLE"
)

// Registry describes the container registry repository.
type Registry struct {
	ResourceName       string        `json:"resourceName"`
	Name               string        `json:"name"`
	ImageTagMutability TagMutability `json:"imageTagMutability"`
	// Protect makes the engine refuse to delete the repository until the flag is removed.
	Protect bool `json:"protect"`
}

// AccessPolicy describes the policy document attached to the registry.
type AccessPolicy struct {
	ResourceName string `json:"resourceName"`
	// Registry is the ResourceName of the registry the policy is attached to.
	Registry string `json:"registry"`
	Document string `json:"document"`
}

// LifecyclePolicy describes the expiration rule attached to the registry.
type LifecyclePolicy struct {
	ResourceName string `json:"resourceName"`
	Registry     string `json:"registry"`
	Document     string `json:"document"`
}

// Image describes a container image built at apply time and pushed to the registry.
type Image struct {
	ResourceName string `json:"resourceName"`
	// Registry is the ResourceName of the registry whose URL the image is pushed to.
	Registry   string `json:"registry"`
	Context    string `json:"context"`
	Dockerfile string `json:"dockerfile"`
	Platform   string `json:"platform,omitempty"`
}

// Output describes the stack output publishing the built image address.
type Output struct {
	Key string `json:"key"`
	// Image is the ResourceName of the image whose address is exported.
	Image string `json:"image"`
}

// Declaration is the complete desired state of one stack.
type Declaration struct {
	Stack           string          `json:"stack"`
	Registry        Registry        `json:"registry"`
	AccessPolicy    AccessPolicy    `json:"accessPolicy"`
	LifecyclePolicy LifecyclePolicy `json:"lifecyclePolicy"`
	Image           Image           `json:"image"`
	Output          Output          `json:"output"`
	Graph           Graph           `json:"graph"`
}
