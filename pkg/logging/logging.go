package logging

import "go.uber.org/zap"

// Common log field names.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldType      = "type"
	FieldPort      = "port"
	FieldSignal    = "signal"
	FieldItemID    = "item_id"
	FieldUserID    = "user_id"
	FieldBatch     = "batch"
	FieldKind      = "kind"
)

// NewServiceLogger builds a production logger tagged with the service name.
func NewServiceLogger(serviceName string) (*zap.Logger, error) {
	logger, err := zap.NewProductionConfig().Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String(FieldService, serviceName)), nil
}
