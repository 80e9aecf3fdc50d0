package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"gopkg.in/resty.v1"

	zerr "github.com/project-tagsweep/tagsweep/errors"
	"github.com/project-tagsweep/tagsweep/pkg/log"
)

// manifest media types advertised on every request, the registry
// refuses to return v2/OCI digests without them.
const acceptHeader = "application/json," +
	"application/vnd.docker.distribution.manifest.v2+json," +
	"application/vnd.oci.image.manifest.v1+json"

const contentDigestHeader = "Docker-Content-Digest"

type catalogList struct {
	Repositories []string `json:"repositories"`
}

type imageTags struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// Client is the subset of the distribution HTTP API the sweep needs.
// Implementations must be safe for concurrent use, one instance is
// shared across all repository workers.
type Client interface {
	// ListRepositories returns the registry catalog.
	ListRepositories(ctx context.Context) ([]string, error)
	// ListTags returns all tags of a repository.
	ListTags(ctx context.Context, repo string) ([]string, error)
	// ResolveDigest returns the manifest digest a tag points at. It
	// returns ErrManifestNotFound when the registry no longer knows the
	// tag and ErrDigestHeaderMissing when the response carries no
	// digest header.
	ResolveDigest(ctx context.Context, repo, tag string) (string, error)
	// DeleteManifest deletes a manifest by digest, untagging every tag
	// that points at it.
	DeleteManifest(ctx context.Context, repo, digest string) error
}

// Options configures the HTTP client. Credentials are optional and
// passed through as basic auth on every request.
type Options struct {
	BaseURL  string
	Username string
	Password string
}

type client struct {
	resty *resty.Client
	log   log.Logger
}

func New(opts Options, logger log.Logger) (Client, error) {
	if err := validateURL(opts.BaseURL); err != nil {
		return nil, err
	}

	rclient := resty.New()
	rclient.SetHostURL(strings.TrimSuffix(opts.BaseURL, "/"))
	rclient.SetHeader("Accept", acceptHeader)

	if opts.Username != "" {
		rclient.SetBasicAuth(opts.Username, opts.Password)
	}

	return &client{resty: rclient, log: logger}, nil
}

func (c *client) ListRepositories(ctx context.Context) ([]string, error) {
	var catalog catalogList

	resp, err := c.resty.R().SetContext(ctx).Get("/v2/_catalog")
	if err != nil {
		return nil, err
	}

	c.log.Debug().Str("endpoint", "/v2/_catalog").Int("status", resp.StatusCode()).
		Msg("fetched catalog")

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(resp.Body(), &catalog); err != nil {
		return nil, err
	}

	return catalog.Repositories, nil
}

func (c *client) ListTags(ctx context.Context, repo string) ([]string, error) {
	var tags imageTags

	resp, err := c.resty.R().SetContext(ctx).Get(fmt.Sprintf("/v2/%s/tags/list", repo))
	if err != nil {
		return nil, err
	}

	c.log.Debug().Str("repository", repo).Int("status", resp.StatusCode()).
		Msg("fetched tag list")

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(resp.Body(), &tags); err != nil {
		return nil, err
	}

	return tags.Tags, nil
}

func (c *client) ResolveDigest(ctx context.Context, repo, tag string) (string, error) {
	resp, err := c.resty.R().SetContext(ctx).Head(fmt.Sprintf("/v2/%s/manifests/%s", repo, tag))
	if err != nil {
		return "", err
	}

	c.log.Debug().Str("repository", repo).Str("tag", tag).Int("status", resp.StatusCode()).
		Msg("resolved tag digest")

	if resp.StatusCode() == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s:%s", zerr.ErrManifestNotFound, repo, tag)
	}

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return "", err
	}

	digest := resp.Header().Get(contentDigestHeader)
	if digest == "" {
		return "", fmt.Errorf("%w: %s:%s", zerr.ErrDigestHeaderMissing, repo, tag)
	}

	return digest, nil
}

func (c *client) DeleteManifest(ctx context.Context, repo, digest string) error {
	resp, err := c.resty.R().SetContext(ctx).Delete(fmt.Sprintf("/v2/%s/manifests/%s", repo, digest))
	if err != nil {
		return err
	}

	c.log.Debug().Str("repository", repo).Str("digest", digest).Int("status", resp.StatusCode()).
		Msg("deleted manifest")

	if !resp.IsSuccess() {
		return fmt.Errorf("%w: Expected: %d, Got: %d, Body: '%s'", zerr.ErrBadHTTPStatusCode,
			http.StatusAccepted, resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func expectStatus(resp *resty.Response, expected int) error {
	if resp.StatusCode() == expected {
		return nil
	}

	var err error

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		err = zerr.ErrUnauthorizedAccess
	default:
		err = zerr.ErrBadHTTPStatusCode
	}

	return fmt.Errorf("%w: Expected: %d, Got: %d, Body: '%s'", err, expected,
		resp.StatusCode(), string(resp.Body()))
}

func validateURL(str string) error {
	parsedURL, err := url.Parse(str)
	if err != nil {
		if strings.Contains(err.Error(), "first path segment in URL cannot contain colon") {
			return fmt.Errorf("%w: scheme not provided (ex: https://)", zerr.ErrInvalidURL)
		}

		return err
	}

	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return fmt.Errorf("%w: scheme not provided (ex: https://)", zerr.ErrInvalidURL)
	}

	return nil
}
