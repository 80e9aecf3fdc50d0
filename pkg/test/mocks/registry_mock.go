package mocks

import "context"

// RegistryMock implements registry.Client with overridable functions.
type RegistryMock struct {
	ListRepositoriesFn func(ctx context.Context) ([]string, error)

	ListTagsFn func(ctx context.Context, repo string) ([]string, error)

	ResolveDigestFn func(ctx context.Context, repo, tag string) (string, error)

	DeleteManifestFn func(ctx context.Context, repo, digest string) error
}

func (registryMock RegistryMock) ListRepositories(ctx context.Context) ([]string, error) {
	if registryMock.ListRepositoriesFn != nil {
		return registryMock.ListRepositoriesFn(ctx)
	}

	return []string{}, nil
}

func (registryMock RegistryMock) ListTags(ctx context.Context, repo string) ([]string, error) {
	if registryMock.ListTagsFn != nil {
		return registryMock.ListTagsFn(ctx, repo)
	}

	return []string{}, nil
}

func (registryMock RegistryMock) ResolveDigest(ctx context.Context, repo, tag string) (string, error) {
	if registryMock.ResolveDigestFn != nil {
		return registryMock.ResolveDigestFn(ctx, repo, tag)
	}

	return "", nil
}

func (registryMock RegistryMock) DeleteManifest(ctx context.Context, repo, digest string) error {
	if registryMock.DeleteManifestFn != nil {
		return registryMock.DeleteManifestFn(ctx, repo, digest)
	}

	return nil
}
