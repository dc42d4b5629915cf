package declarator

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	accessPolicyVersion   = "2008-10-17"
	accessPolicySid       = "new policy"
	accessPolicyEffect    = "Allow"
	accessPolicyPrincipal = "*"

	lifecycleRulePriority = 1
	lifecycleDescription  = "Expire images if more than 10 exist"
	lifecycleTagStatus    = "any"
	lifecycleCountType    = "imageCountMoreThan"
	// LifecycleMaxImages is the number of images retained before older ones expire.
	LifecycleMaxImages  = 10
	lifecycleActionType = "expire"
)

// AccessPolicyActions returns the registry actions granted by the access policy, in document order.
// The returned slice is a fresh copy.
func AccessPolicyActions() []string {
	return []string{
		"ecr:GetDownloadUrlForLayer",
		"ecr:BatchGetImage",
		"ecr:BatchCheckLayerAvailability",
		"ecr:PutImage",
		"ecr:InitiateLayerUpload",
		"ecr:UploadLayerPart",
		"ecr:CompleteLayerUpload",
		"ecr:DescribeRepositories",
		"ecr:GetRepositoryPolicy",
		"ecr:ListImages",
		"ecr:DeleteRepository",
		"ecr:BatchDeleteImage",
		"ecr:SetRepositoryPolicy",
		"ecr:DeleteRepositoryPolicy",
	}
}

// AccessPolicyDocument is an IAM-style repository policy.
type AccessPolicyDocument struct {
	Version   string            `json:"Version"`
	Statement []PolicyStatement `json:"Statement"`
}

// PolicyStatement is a single statement of an AccessPolicyDocument.
//
// Principal is "*": every principal is granted the listed actions. Narrowing it is a
// behavioral change for everything that pushes to or pulls from the registry today.
type PolicyStatement struct {
	Sid       string   `json:"Sid"`
	Effect    string   `json:"Effect"`
	Principal string   `json:"Principal"`
	Action    []string `json:"Action"`
}

// NewAccessPolicyDocument returns the access policy attached to the registry.
func NewAccessPolicyDocument() AccessPolicyDocument {
	return AccessPolicyDocument{
		Version: accessPolicyVersion,
		Statement: []PolicyStatement{
			{
				Sid:       accessPolicySid,
				Effect:    accessPolicyEffect,
				Principal: accessPolicyPrincipal,
				Action:    AccessPolicyActions(),
			},
		},
	}
}

// Encode renders the document on one line with ", " and ": " separators, the bytes
// existing stacks hold for this policy. Field order is fixed by the struct layout.
func (d AccessPolicyDocument) Encode() (string, error) {
	return encodeDocument(d)
}

// LifecyclePolicyDocument is a registry lifecycle policy.
type LifecyclePolicyDocument struct {
	Rules []LifecycleRule `json:"rules"`
}

// LifecycleRule selects images and applies an action to them.
type LifecycleRule struct {
	RulePriority int                `json:"rulePriority"`
	Description  string             `json:"description"`
	Selection    LifecycleSelection `json:"selection"`
	Action       LifecycleAction    `json:"action"`
}

// LifecycleSelection determines which images a LifecycleRule applies to.
type LifecycleSelection struct {
	TagStatus   string `json:"tagStatus"`
	CountType   string `json:"countType"`
	CountNumber int    `json:"countNumber"`
}

// LifecycleAction is what happens to images matched by a rule.
type LifecycleAction struct {
	Type string `json:"type"`
}

// NewLifecyclePolicyDocument returns the policy that expires images beyond LifecycleMaxImages.
// Which images go first is decided by the registry service.
func NewLifecyclePolicyDocument() LifecyclePolicyDocument {
	return LifecyclePolicyDocument{
		Rules: []LifecycleRule{
			{
				RulePriority: lifecycleRulePriority,
				Description:  lifecycleDescription,
				Selection: LifecycleSelection{
					TagStatus:   lifecycleTagStatus,
					CountType:   lifecycleCountType,
					CountNumber: LifecycleMaxImages,
				},
				Action: LifecycleAction{Type: lifecycleActionType},
			},
		},
	}
}

// Encode renders the document like AccessPolicyDocument.Encode.
func (d LifecyclePolicyDocument) Encode() (string, error) {
	return encodeDocument(d)
}

func encodeDocument(doc any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode policy document: %w", err)
	}

	return spaceSeparators(data), nil
}

// spaceSeparators adds a space after every ',' and ':' of compact JSON outside strings.
func spaceSeparators(compact []byte) string {
	var (
		out      strings.Builder
		inString bool
		escaped  bool
	)

	out.Grow(len(compact) + len(compact)/4)

	for _, c := range compact {
		out.WriteByte(c)

		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && (c == ',' || c == ':'):
			out.WriteByte(' ')
		}
	}

	return out.String()
}
