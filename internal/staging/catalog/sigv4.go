package catalog

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	signerv4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
)

// sigV4Transport signs every outgoing request with AWS SigV4, the
// authentication the S3 Tables Iceberg REST endpoint requires (it is not
// part of the Iceberg REST catalog spec's own bearer/OAuth2 auth options,
// so it is layered on as a http.RoundTripper instead).
type sigV4Transport struct {
	cfg     aws.Config
	signer  *signerv4.Signer
	service string
	region  string
	base    http.RoundTripper
}

func newSigV4Transport(cfg aws.Config, service, region string) *sigV4Transport {
	return &sigV4Transport{cfg: cfg, signer: signerv4.NewSigner(), service: service, region: region, base: http.DefaultTransport}
}

func (t *sigV4Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	creds, err := t.cfg.Credentials.Retrieve(req.Context())
	if err != nil {
		return nil, err
	}

	var body []byte
	if req.Body != nil {
		body, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
	}
	hash := sha256.Sum256(body)

	signedReq := req.Clone(req.Context())
	if err := t.signer.SignHTTP(req.Context(), creds, signedReq, hex.EncodeToString(hash[:]), t.service, t.region, time.Now()); err != nil {
		return nil, err
	}

	return t.base.RoundTrip(signedReq)
}
