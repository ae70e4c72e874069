package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierSplitsOnFirstDotOnly(t *testing.T) {
	ns, name := Identifier("raw.events.v2")
	assert.Equal(t, "raw", ns)
	assert.Equal(t, "events.v2", name)

	ns, name = Identifier("no_namespace")
	assert.Equal(t, "", ns)
	assert.Equal(t, "no_namespace", name)
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"rest ok", Config{Type: TypeREST, REST: &RESTConfig{Endpoint: "https://cat", Warehouse: "s3://wh"}}, false},
		{"rest missing warehouse", Config{Type: TypeREST, REST: &RESTConfig{Endpoint: "https://cat"}}, true},
		{"s3tables ok", Config{Type: TypeS3Tables, S3Tables: &S3TablesConfig{ARN: "arn:aws:s3tables:::x", Region: "us-east-1"}}, false},
		{"unity missing token", Config{Type: TypeUnity, Unity: &UnityConfig{Endpoint: "https://x", CatalogName: "main"}}, true},
		{"glue ok", Config{Type: TypeGlue, Glue: &GlueConfig{Region: "us-east-1", Database: "analytics"}}, false},
		{"unknown type", Config{Type: "bogus"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
