// Package catalog is a catalog-agnostic façade over the four Iceberg
// catalog backends the staging engine can target: REST, AWS S3 Tables,
// Databricks Unity Catalog, and AWS Glue (spec.md §4.5). REST, S3 Tables,
// and Unity all speak the Iceberg REST catalog protocol — S3 Tables and
// Unity each expose their own REST-compatible endpoint in front of it —
// so only two underlying client shapes exist: an
// "github.com/apache/iceberg-go/catalog/rest" client (REST/S3 Tables/Unity,
// distinguished only by endpoint and auth) and an
// "github.com/apache/iceberg-go/catalog/glue" client backed by
// aws-sdk-go-v2's Glue service client.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	icecatalog "github.com/apache/iceberg-go/catalog"
	"github.com/apache/iceberg-go/catalog/glue"
	"github.com/apache/iceberg-go/catalog/rest"
	"github.com/apache/iceberg-go/table"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

// Type selects which of the four catalog backends a Config targets.
type Type string

const (
	TypeREST     Type = "rest"
	TypeS3Tables Type = "s3_tables"
	TypeUnity    Type = "unity"
	TypeGlue     Type = "glue"
)

// RESTConfig holds the REST catalog's own connection details.
type RESTConfig struct {
	Endpoint   string
	Warehouse  string
	BearerToken string
	Properties map[string]string
}

// S3TablesConfig addresses an AWS S3 Tables bucket by ARN.
type S3TablesConfig struct {
	ARN     string
	Region  string
	Profile string
}

// UnityConfig addresses a Databricks Unity Catalog instance.
type UnityConfig struct {
	Endpoint    string
	CatalogName string
	BearerToken string
}

// GlueConfig addresses an AWS Glue Data Catalog database.
type GlueConfig struct {
	Region   string
	Database string
	Profile  string
}

// Config is the sum type over the four catalog variants (spec.md §4.5).
type Config struct {
	Type     Type
	REST     *RESTConfig
	S3Tables *S3TablesConfig
	Unity    *UnityConfig
	Glue     *GlueConfig
}

// Validate checks that the variant named by Type carries its required
// fields.
func (c Config) Validate() error {
	switch c.Type {
	case TypeREST:
		if c.REST == nil || c.REST.Endpoint == "" || c.REST.Warehouse == "" {
			return fmt.Errorf("catalog: rest config requires endpoint and warehouse")
		}
	case TypeS3Tables:
		if c.S3Tables == nil || c.S3Tables.ARN == "" || c.S3Tables.Region == "" {
			return fmt.Errorf("catalog: s3_tables config requires arn and region")
		}
	case TypeUnity:
		if c.Unity == nil || c.Unity.Endpoint == "" || c.Unity.CatalogName == "" || c.Unity.BearerToken == "" {
			return fmt.Errorf("catalog: unity config requires endpoint, catalog_name, and bearer_token")
		}
	case TypeGlue:
		if c.Glue == nil || c.Glue.Region == "" || c.Glue.Database == "" {
			return fmt.Errorf("catalog: glue config requires region and database")
		}
	default:
		return fmt.Errorf("catalog: unknown catalog type %q", c.Type)
	}
	return nil
}

// TableInfo is the summary returned by GetTableInfo.
type TableInfo struct {
	Identifier string
	Location   string
	Properties map[string]string
}

// Catalog exposes the six operations spec.md §4.5 names, over whichever
// backend Open constructed.
type Catalog struct {
	inner icecatalog.Catalog
}

// Identifier splits a dotted "namespace.name" identifier on its first dot
// only, so the name itself may contain dots (spec.md §4.5).
func Identifier(dotted string) (namespace, name string) {
	idx := strings.Index(dotted, ".")
	if idx < 0 {
		return "", dotted
	}
	return dotted[:idx], dotted[idx+1:]
}

// Open constructs a Catalog for the variant named by cfg.Type.
func Open(ctx context.Context, cfg Config) (*Catalog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case TypeREST:
		return openREST(ctx, cfg.REST.Endpoint, cfg.REST.Warehouse, cfg.REST.BearerToken, cfg.REST.Properties, nil)
	case TypeUnity:
		opts := map[string]string{"unity.catalog": cfg.Unity.CatalogName}
		return openREST(ctx, strings.TrimSuffix(cfg.Unity.Endpoint, "/")+"/api/2.1/unity-catalog/iceberg", "", cfg.Unity.BearerToken, opts, nil)
	case TypeS3Tables:
		awsCfg, err := loadAWSConfig(ctx, cfg.S3Tables.Region, cfg.S3Tables.Profile)
		if err != nil {
			return nil, fmt.Errorf("catalog: loading AWS config for s3_tables: %w", err)
		}
		endpoint := fmt.Sprintf("https://s3tables.%s.amazonaws.com/iceberg", cfg.S3Tables.Region)
		client := &http.Client{Transport: newSigV4Transport(awsCfg, "s3tables", cfg.S3Tables.Region)}
		return openREST(ctx, endpoint, cfg.S3Tables.ARN, "", nil, client)
	case TypeGlue:
		return openGlue(ctx, cfg.Glue.Region, cfg.Glue.Database, cfg.Glue.Profile)
	default:
		return nil, fmt.Errorf("catalog: unknown catalog type %q", cfg.Type)
	}
}

func openREST(ctx context.Context, uri, warehouse, bearerToken string, properties map[string]string, httpClient *http.Client) (*Catalog, error) {
	opts := []rest.Option{}
	if warehouse != "" {
		opts = append(opts, rest.WithWarehouseLocation(warehouse))
	}
	if bearerToken != "" {
		opts = append(opts, rest.WithOAuthToken(bearerToken))
	}
	if httpClient != nil {
		opts = append(opts, rest.WithHTTPClient(httpClient))
	}
	for k, v := range properties {
		opts = append(opts, rest.WithAdditionalProps(icecatalog.Properties{k: v}))
	}

	cat, err := rest.NewCatalog(ctx, "schemakit", uri, opts...)
	if err != nil {
		return nil, fmt.Errorf("catalog: opening rest catalog at %q: %w", uri, err)
	}
	return &Catalog{inner: cat}, nil
}

func openGlue(ctx context.Context, region, database, profile string) (*Catalog, error) {
	awsCfg, err := loadAWSConfig(ctx, region, profile)
	if err != nil {
		return nil, fmt.Errorf("catalog: loading AWS config for glue: %w", err)
	}
	cat := glue.NewCatalog(glue.WithAwsConfig(awsCfg))
	_ = database
	return &Catalog{inner: cat}, nil
}

func loadAWSConfig(ctx context.Context, region, profile string) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

// ListNamespaces lists every namespace in the catalog.
func (c *Catalog) ListNamespaces(ctx context.Context) ([]string, error) {
	namespaces, err := c.inner.ListNamespaces(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: listing namespaces: %w", err)
	}
	out := make([]string, 0, len(namespaces))
	for _, ns := range namespaces {
		out = append(out, strings.Join(ns, "."))
	}
	return out, nil
}

// CreateNamespace creates a namespace; one that already exists is left as
// is.
func (c *Catalog) CreateNamespace(ctx context.Context, namespace string) error {
	existing, err := c.ListNamespaces(ctx)
	if err != nil {
		return err
	}
	for _, ns := range existing {
		if ns == namespace {
			return nil
		}
	}
	if err := c.inner.CreateNamespace(ctx, table.Identifier{namespace}, nil); err != nil {
		return fmt.Errorf("catalog: creating namespace %q: %w", namespace, err)
	}
	return nil
}

// ListTables lists every table in a namespace.
func (c *Catalog) ListTables(ctx context.Context, namespace string) ([]string, error) {
	var out []string
	for ident, err := range c.inner.ListTables(ctx, table.Identifier{namespace}) {
		if err != nil {
			return nil, fmt.Errorf("catalog: listing tables in %q: %w", namespace, err)
		}
		out = append(out, ident[len(ident)-1])
	}
	return out, nil
}

// TableExists reports whether namespace.name resolves to a table.
func (c *Catalog) TableExists(ctx context.Context, namespace, name string) (bool, error) {
	exists, err := c.inner.CheckTableExists(ctx, table.Identifier{namespace, name})
	if err != nil {
		return false, fmt.Errorf("catalog: checking table %q.%q: %w", namespace, name, err)
	}
	return exists, nil
}

// GetTableInfo loads a table's location and properties.
func (c *Catalog) GetTableInfo(ctx context.Context, namespace, name string) (*TableInfo, error) {
	tbl, err := c.inner.LoadTable(ctx, table.Identifier{namespace, name}, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: loading table %q.%q: %w", namespace, name, err)
	}
	md := tbl.Metadata()
	return &TableInfo{
		Identifier: namespace + "." + name,
		Location:   tbl.Location(),
		Properties: md.Properties(),
	}, nil
}

// DropTable drops namespace.name from the catalog.
func (c *Catalog) DropTable(ctx context.Context, namespace, name string) error {
	if err := c.inner.DropTable(ctx, table.Identifier{namespace, name}); err != nil {
		return fmt.Errorf("catalog: dropping table %q.%q: %w", namespace, name, err)
	}
	return nil
}

// Inner exposes the underlying iceberg-go catalog for packages that need
// direct access for table creation/loading (internal/staging/table).
func (c *Catalog) Inner() icecatalog.Catalog { return c.inner }
