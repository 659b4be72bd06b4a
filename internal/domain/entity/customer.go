package entity

// CustomerRecord is a single customer's feature set as submitted for
// churn scoring. Field names follow the model's training schema.
// Tenure, Services_Subscribed and TotalCharges are pointers because
// zero is a legal value for them; binding would otherwise report a
// present zero as missing.
type CustomerRecord struct {
	Gender             string   `json:"Gender" binding:"required,oneof=Male Female"`
	Age                int      `json:"Age" binding:"required,gte=18,lte=100"`
	Tenure             *int     `json:"Tenure" binding:"required,gte=0,lte=100"`
	ServicesSubscribed *int     `json:"Services_Subscribed" binding:"required,gte=0,lte=10"`
	ContractType       string   `json:"Contract_Type" binding:"required,oneof=Month-to-Month 'One year' 'Two year'"`
	MonthlyCharges     float64  `json:"MonthlyCharges" binding:"required,gt=0"`
	TotalCharges       *float64 `json:"TotalCharges" binding:"required,gte=0"`
	TechSupport        string   `json:"TechSupport" binding:"required,oneof=Yes No"`
	OnlineSecurity     string   `json:"OnlineSecurity" binding:"required,oneof=Yes No"`
	InternetService    string   `json:"InternetService" binding:"required,oneof=DSL 'Fiber optic' No"`
}

// Churn labels produced from the model's raw class prediction
const (
	LabelChurn   = "Churn"
	LabelNoChurn = "No Churn"
)

// LabelForClass maps a raw predicted class to its churn label
func LabelForClass(class int) string {
	if class == 1 {
		return LabelChurn
	}
	return LabelNoChurn
}
