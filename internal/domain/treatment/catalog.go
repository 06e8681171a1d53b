package treatment

// Treatment types supported by the clinic.
const (
	TypeIVF = "IVF"
	TypeIUI = "IUI"
)

// Step is one phase of a treatment protocol. Step ids are stable
// identifiers carried over from the charting system; gaps in the numbering
// come from retired monitoring steps and must not be compacted.
type Step struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Catalogue order defines temporal precedence. An id appears at most once
// per catalogue.
var ivfSteps = []Step{
	{ID: "step0_pre_cycle_prep", Label: "Pre-cycle preparation", Description: "Baseline labs, ultrasound and protocol selection before stimulation begins."},
	{ID: "step1_stimulation", Label: "Ovarian stimulation", Description: "Daily gonadotropin injections with periodic monitoring of follicle growth."},
	{ID: "step4_opu", Label: "Oocyte pickup (OPU)", Description: "Ultrasound-guided egg retrieval under sedation."},
	{ID: "step5_fertilization", Label: "Fertilization", Description: "Conventional insemination or ICSI of retrieved oocytes."},
	{ID: "step6_embryo_culture", Label: "Embryo culture", Description: "Embryos cultured to cleavage or blastocyst stage; development graded daily."},
	{ID: "step7_embryo_transfer", Label: "Embryo transfer", Description: "Transfer of selected embryo(s) into the uterine cavity."},
	{ID: "step8_luteal_support", Label: "Luteal support", Description: "Progesterone supplementation through the luteal phase."},
	{ID: "step9_pregnancy_test", Label: "Pregnancy test", Description: "Serum beta-hCG two weeks after transfer."},
}

var iuiSteps = []Step{
	{ID: "step0_baseline", Label: "Baseline assessment", Description: "Cycle-day labs and ultrasound to confirm readiness."},
	{ID: "step1_stimulation", Label: "Ovarian stimulation", Description: "Oral or injectable stimulation of follicle development."},
	{ID: "step2_monitoring", Label: "Follicular monitoring", Description: "Serial ultrasounds tracking follicle size and endometrial lining."},
	{ID: "step3_trigger", Label: "Ovulation trigger", Description: "hCG trigger injection timed to lead follicle maturity."},
	{ID: "step4_insemination", Label: "Insemination", Description: "Washed sperm placed into the uterine cavity."},
	{ID: "step5_luteal_support", Label: "Luteal support", Description: "Progesterone supplementation after insemination."},
	{ID: "step6_pregnancy_test", Label: "Pregnancy test", Description: "Serum beta-hCG two weeks after insemination."},
}

// CatalogueFor returns the ordered step catalogue for a treatment type,
// or nil for an unknown type.
func CatalogueFor(treatmentType string) []Step {
	switch treatmentType {
	case TypeIVF:
		return ivfSteps
	case TypeIUI:
		return iuiSteps
	default:
		return nil
	}
}

// ValidType reports whether t names a supported treatment protocol.
func ValidType(t string) bool {
	return t == TypeIVF || t == TypeIUI
}
