package model

// DatabaseType enumerates the systems a Table may belong to.
type DatabaseType string

const (
	Postgres          DatabaseType = "postgres"
	MySQL             DatabaseType = "mysql"
	SQLServer         DatabaseType = "sqlserver"
	DynamoDB          DatabaseType = "dynamodb"
	Cassandra         DatabaseType = "cassandra"
	Kafka             DatabaseType = "kafka"
	Pulsar            DatabaseType = "pulsar"
	DatabricksDelta   DatabaseType = "databricks_delta"
	DatabricksIceberg DatabaseType = "databricks_iceberg"
	AWSGlue           DatabaseType = "aws_glue"
	DatabricksLakebase DatabaseType = "databricks_lakebase"
)

// MedallionLayer enumerates the Bronze/Silver/Gold/Operational taxonomy.
type MedallionLayer string

const (
	Bronze      MedallionLayer = "bronze"
	Silver      MedallionLayer = "silver"
	Gold        MedallionLayer = "gold"
	Operational MedallionLayer = "operational"
)

// SCDPattern enumerates Slowly Changing Dimension patterns.
type SCDPattern string

const (
	SCDType1 SCDPattern = "type1"
	SCDType2 SCDPattern = "type2"
	SCDType3 SCDPattern = "type3"
	SCDType4 SCDPattern = "type4"
	SCDType6 SCDPattern = "type6"
)

// DataVaultClass enumerates Data Vault modeling classifications.
type DataVaultClass string

const (
	Hub       DataVaultClass = "hub"
	Link      DataVaultClass = "link"
	Satellite DataVaultClass = "satellite"
	PIT       DataVaultClass = "pit"
	Bridge    DataVaultClass = "bridge"
	Reference DataVaultClass = "reference"
)

// ModelingLevel enumerates Conceptual/Logical/Physical modeling levels.
type ModelingLevel string

const (
	Conceptual ModelingLevel = "conceptual"
	Logical    ModelingLevel = "logical"
	Physical   ModelingLevel = "physical"
)

// LogicalType is the normalized column type enumeration every importer
// converges on.
type LogicalType string

const (
	LogicalString      LogicalType = "string"
	LogicalInteger     LogicalType = "integer"
	LogicalNumber      LogicalType = "number"
	LogicalBoolean     LogicalType = "boolean"
	LogicalBytes       LogicalType = "bytes"
	LogicalDate        LogicalType = "date"
	LogicalTime        LogicalType = "time"
	LogicalTimestamp   LogicalType = "timestamp"
	LogicalTimestampTZ LogicalType = "timestamptz"
	LogicalUUID        LogicalType = "uuid"
	LogicalObject      LogicalType = "object"
	LogicalArray       LogicalType = "array"
)

// Cardinality enumerates Relationship cardinalities.
type Cardinality string

const (
	OneToOne   Cardinality = "one_to_one"
	OneToMany  Cardinality = "one_to_many"
	ManyToMany Cardinality = "many_to_many"
)

// RelationshipType enumerates the kind of edge a Relationship represents.
type RelationshipType string

const (
	RelForeignKey RelationshipType = "foreign_key"
	RelDataFlow   RelationshipType = "data_flow"
	RelETL        RelationshipType = "etl"
	RelAssociation RelationshipType = "association"
)

// AssetKind enumerates the kinds of workspace-addressable asset files.
type AssetKind string

const (
	KindODCS            AssetKind = "odcs"
	KindODPS            AssetKind = "odps"
	KindCADS            AssetKind = "cads"
	KindBPMN            AssetKind = "bpmn"
	KindDMN             AssetKind = "dmn"
	KindOpenAPI         AssetKind = "openapi"
	KindDecision        AssetKind = "decision"
	KindKnowledge       AssetKind = "knowledge"
	KindWorkspace       AssetKind = "workspace"
	KindRelationships   AssetKind = "relationships"
	KindDecisionIndex   AssetKind = "decision_index"
	KindKnowledgeIndex  AssetKind = "knowledge_index"
)

// DataProductStatus enumerates ODPS lifecycle states.
type DataProductStatus string

const (
	DPProposed   DataProductStatus = "proposed"
	DPDraft      DataProductStatus = "draft"
	DPActive     DataProductStatus = "active"
	DPDeprecated DataProductStatus = "deprecated"
	DPRetired    DataProductStatus = "retired"
)

// ComputeAssetKind enumerates CADS kinds.
type ComputeAssetKind string

const (
	CAAIModel            ComputeAssetKind = "AIModel"
	CAMLPipeline         ComputeAssetKind = "MLPipeline"
	CAApplication        ComputeAssetKind = "Application"
	CAETLPipeline        ComputeAssetKind = "ETLPipeline"
	CASourceSystem       ComputeAssetKind = "SourceSystem"
	CADestinationSystem  ComputeAssetKind = "DestinationSystem"
	CADataPipeline       ComputeAssetKind = "DataPipeline"
	CAETLProcess         ComputeAssetKind = "ETLProcess"
)

// ComputeAssetStatus enumerates CADS lifecycle states.
type ComputeAssetStatus string

const (
	CADraft      ComputeAssetStatus = "draft"
	CAValidated  ComputeAssetStatus = "validated"
	CAProduction ComputeAssetStatus = "production"
	CADeprecated ComputeAssetStatus = "deprecated"
)

// RiskClassification enumerates CADS risk levels.
type RiskClassification string

const (
	RiskMinimal RiskClassification = "minimal"
	RiskLow     RiskClassification = "low"
	RiskMedium  RiskClassification = "medium"
	RiskHigh    RiskClassification = "high"
)

// DecisionStatus enumerates MADR lifecycle states.
type DecisionStatus string

const (
	DecisionDraft      DecisionStatus = "draft"
	DecisionProposed   DecisionStatus = "proposed"
	DecisionAccepted   DecisionStatus = "accepted"
	DecisionRejected   DecisionStatus = "rejected"
	DecisionSuperseded DecisionStatus = "superseded"
	DecisionDeprecated DecisionStatus = "deprecated"
)

// KnowledgeType enumerates KB article types.
type KnowledgeType string

const (
	KBGuide           KnowledgeType = "guide"
	KBStandard        KnowledgeType = "standard"
	KBReference       KnowledgeType = "reference"
	KBGlossary        KnowledgeType = "glossary"
	KBHowTo           KnowledgeType = "how-to"
	KBTroubleshooting KnowledgeType = "troubleshooting"
	KBPolicy          KnowledgeType = "policy"
	KBTemplate        KnowledgeType = "template"
	KBConcept         KnowledgeType = "concept"
	KBRunbook         KnowledgeType = "runbook"
)

// KnowledgeStatus enumerates KB lifecycle states.
type KnowledgeStatus string

const (
	KBDraft     KnowledgeStatus = "draft"
	KBReview    KnowledgeStatus = "review"
	KBPublished KnowledgeStatus = "published"
	KBArchived  KnowledgeStatus = "archived"
	KBDeprecated KnowledgeStatus = "deprecated"
)

// BatchStatus enumerates the staging batch lifecycle.
type BatchStatus string

const (
	BatchRunning   BatchStatus = "running"
	BatchCompleted BatchStatus = "completed"
	BatchFailed    BatchStatus = "failed"
)

// DedupStrategy enumerates staging ingestion deduplication strategies.
type DedupStrategy string

const (
	DedupNone       DedupStrategy = "none"
	DedupByPath     DedupStrategy = "by-path"
	DedupByContent  DedupStrategy = "by-content-hash"
)
