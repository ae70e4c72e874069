package model

// AssetRef is a lightweight pointer from a Workspace's index into one of
// its member asset files, carrying just enough to resolve the filename
// grammar without loading the asset body (spec.md §4.3).
type AssetRef struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Domain   string    `json:"domain" yaml:"domain"`
	System   string    `json:"system,omitempty" yaml:"system,omitempty"`
	Kind     AssetKind `json:"kind" yaml:"kind"`
	Path     string    `json:"path,omitempty" yaml:"path,omitempty"`
}

// System groups Tables and compute assets that share an owning platform or
// application within a Domain.
type System struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Description     string   `json:"description,omitempty" yaml:"description,omitempty"`
	TableIDs        []string `json:"table_ids,omitempty" yaml:"table_ids,omitempty"`
	ComputeAssetIDs []string `json:"compute_asset_ids,omitempty" yaml:"compute_asset_ids,omitempty"`
}

// Domain groups Systems under a shared business or organizational
// boundary within a Workspace.
type Domain struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Systems     []System `json:"systems,omitempty" yaml:"systems,omitempty"`
}

// Workspace is the top-level container: a name, an owner, a list of
// Domains, the flat Asset index, and the Relationships that cross-cut
// them (spec.md §3).
type Workspace struct {
	ID            string          `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name"`
	Owner         string          `json:"owner,omitempty" yaml:"owner,omitempty"`
	Description   string          `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt     int64           `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	ModifiedAt    int64           `json:"modified_at,omitempty" yaml:"modified_at,omitempty"`
	Domains       []Domain        `json:"domains,omitempty" yaml:"domains,omitempty"`
	Assets        []AssetRef      `json:"assets,omitempty" yaml:"assets,omitempty"`
	Relationships []*Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// NewWorkspace constructs an empty, named Workspace owned by owner, with a
// freshly generated identity.
func NewWorkspace(name, owner string) *Workspace {
	return &Workspace{ID: NewID(), Name: name, Owner: owner}
}

// DomainByName returns the named Domain, or nil if absent.
func (w *Workspace) DomainByName(name string) *Domain {
	for i := range w.Domains {
		if w.Domains[i].Name == name {
			return &w.Domains[i]
		}
	}
	return nil
}

// EnsureDomain returns the named Domain, creating it (with a fresh ID) if
// absent.
func (w *Workspace) EnsureDomain(name string) *Domain {
	if d := w.DomainByName(name); d != nil {
		return d
	}
	w.Domains = append(w.Domains, Domain{ID: NewID(), Name: name})
	return &w.Domains[len(w.Domains)-1]
}

// AddAsset registers an asset reference in the workspace's flat index.
func (w *Workspace) AddAsset(ref AssetRef) {
	w.Assets = append(w.Assets, ref)
}

// SystemByName returns the named System within the domain, or nil.
func (d *Domain) SystemByName(name string) *System {
	for i := range d.Systems {
		if d.Systems[i].Name == name {
			return &d.Systems[i]
		}
	}
	return nil
}

// EnsureSystem returns the named System, creating it (with a fresh ID) if
// absent.
func (d *Domain) EnsureSystem(name string) *System {
	if s := d.SystemByName(name); s != nil {
		return s
	}
	d.Systems = append(d.Systems, System{ID: NewID(), Name: name})
	return &d.Systems[len(d.Systems)-1]
}
