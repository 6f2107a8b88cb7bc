package docsdk

import (
	"time"

	"github.com/imroc/req/v3"
	"github.com/tnt-sales/docsync/internal/identity"
	"github.com/tnt-sales/docsync/internal/version"
)

const (
	HeaderUserAgent = "User-Agent"

	requestTimeout = 2 * time.Minute
)

// Config holds the endpoints and token capabilities for both external
// services. The drive service and the document store are authenticated
// independently - a delegated user token for the drive, a service token
// for the store.
type Config struct {
	DriveURL    string
	StoreURL    string
	DriveTokens identity.TokenProvider
	StoreTokens identity.TokenProvider
}

// DocSDK bundles the clients for the two external collaborators of the
// migration pipeline.
type DocSDK struct {
	Drive *DriveAPI
	Store *StoreAPI
}

// New creates a new DocSDK client pair.
func New(cfg *Config) (*DocSDK, error) {
	if cfg.DriveURL == "" || cfg.StoreURL == "" {
		return nil, ErrNoServiceURL
	}

	return &DocSDK{
		Drive: newDriveAPI(newClient(cfg.DriveURL, cfg.DriveTokens)),
		Store: newStoreAPI(newClient(cfg.StoreURL, cfg.StoreTokens)),
	}, nil
}

// Close terminates all connections and cleans up resources.
func (s *DocSDK) Close() {
	s.Drive.client.Close()
	s.Store.client.Close()
}

// newClient builds a req client with the shared SDK behavior: base URL,
// json codec, and per-request bearer injection from the token provider.
func newClient(baseURL string, tokens identity.TokenProvider) *req.Client {
	client := req.C().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetCommonHeader(HeaderUserAgent, version.AppName+"/"+version.Version).
		SetJsonMarshal(jsonMarshal).
		SetJsonUnmarshal(jsonUnmarshal)

	if tokens != nil {
		client.OnBeforeRequest(func(_ *req.Client, r *req.Request) error {
			token, err := tokens.Token(r.Context())
			if err != nil {
				return err
			}
			r.SetBearerAuthToken(token)
			return nil
		})
	}

	return client
}
