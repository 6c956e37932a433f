package message

// Body types for ISO 15118-2. Field sets are the subset of each message's
// schema fields that the state machines in pkg/evcc and pkg/secc actually
// consult; this mirrors the teacher codec's practice of modeling one
// Go struct per message kind with Header plus the fields a handler needs,
// rather than a generic property bag.

type SupportedAppProtocolReq struct {
	Header Header
	// Protocols lists, in EVCC-preferred order, the (namespace, major,
	// minor, schemaID) tuples it supports. Only -2/-20 namespaces matter
	// to this core; schemaID is the priority SECC should echo back.
	Protocols []AppProtocol
}

func (SupportedAppProtocolReq) Kind() Kind       { return KindSupportedAppProtocol }
func (SupportedAppProtocolReq) Dialect() Dialect { return Dialect2 }
func (SupportedAppProtocolReq) IsRequest() bool  { return true }

// AppProtocol is one entry of a SupportedAppProtocolReq's protocol list.
type AppProtocol struct {
	Namespace string
	Major     int
	Minor     int
	SchemaID  uint8
}

type SupportedAppProtocolRes struct {
	Header       Header
	ResponseCode ResponseCode
	SchemaID     uint8
	NegotiatedDialect Dialect
}

func (SupportedAppProtocolRes) Kind() Kind       { return KindSupportedAppProtocol }
func (SupportedAppProtocolRes) Dialect() Dialect { return Dialect2 }
func (SupportedAppProtocolRes) IsRequest() bool  { return false }

type SessionSetupReq struct {
	Header Header
	EVCCID []byte
}

func (SessionSetupReq) Kind() Kind       { return KindSessionSetup }
func (SessionSetupReq) Dialect() Dialect { return Dialect2 }
func (SessionSetupReq) IsRequest() bool  { return true }

type SessionSetupRes struct {
	Header       Header
	ResponseCode ResponseCode
	EVSEID       string
	Timestamp    int64
}

func (SessionSetupRes) Kind() Kind       { return KindSessionSetup }
func (SessionSetupRes) Dialect() Dialect { return Dialect2 }
func (SessionSetupRes) IsRequest() bool  { return false }

type ServiceDiscoveryReq struct {
	Header   Header
	Scope    *string
	Category *string
}

func (ServiceDiscoveryReq) Kind() Kind       { return KindServiceDiscovery }
func (ServiceDiscoveryReq) Dialect() Dialect { return Dialect2 }
func (ServiceDiscoveryReq) IsRequest() bool  { return true }

// Service is one energy-transfer or value-added service the SECC offers.
type Service struct {
	ServiceID   int
	ServiceName string
	Modes       []EnergyTransferMode
}

type ServiceDiscoveryRes struct {
	Header             Header
	ResponseCode       ResponseCode
	Services           []Service
	PaymentMethods     []AuthorizationMethod
	CertInstallOffered bool
}

func (ServiceDiscoveryRes) Kind() Kind       { return KindServiceDiscovery }
func (ServiceDiscoveryRes) Dialect() Dialect { return Dialect2 }
func (ServiceDiscoveryRes) IsRequest() bool  { return false }

type ServiceDetailReq struct {
	Header    Header
	ServiceID int
}

func (ServiceDetailReq) Kind() Kind       { return KindServiceDetail }
func (ServiceDetailReq) Dialect() Dialect { return Dialect2 }
func (ServiceDetailReq) IsRequest() bool  { return true }

type ServiceDetailRes struct {
	Header       Header
	ResponseCode ResponseCode
	ServiceID    int
	Parameters   map[string]string
}

func (ServiceDetailRes) Kind() Kind       { return KindServiceDetail }
func (ServiceDetailRes) Dialect() Dialect { return Dialect2 }
func (ServiceDetailRes) IsRequest() bool  { return false }

type PaymentServiceSelectionReq struct {
	Header            Header
	SelectedAuthMethod AuthorizationMethod
	SelectedServiceID  int
}

func (PaymentServiceSelectionReq) Kind() Kind       { return KindServiceSelection }
func (PaymentServiceSelectionReq) Dialect() Dialect { return Dialect2 }
func (PaymentServiceSelectionReq) IsRequest() bool  { return true }

type PaymentServiceSelectionRes struct {
	Header       Header
	ResponseCode ResponseCode
}

func (PaymentServiceSelectionRes) Kind() Kind       { return KindServiceSelection }
func (PaymentServiceSelectionRes) Dialect() Dialect { return Dialect2 }
func (PaymentServiceSelectionRes) IsRequest() bool  { return false }

type PaymentDetailsReq struct {
	Header         Header
	ContractID     string
	ContractChainDER [][]byte // leaf-first DER chain, see pkg/pki
}

func (PaymentDetailsReq) Kind() Kind       { return KindPaymentDetails }
func (PaymentDetailsReq) Dialect() Dialect { return Dialect2 }
func (PaymentDetailsReq) IsRequest() bool  { return true }

type PaymentDetailsRes struct {
	Header       Header
	ResponseCode ResponseCode
	GenChallenge []byte
}

func (PaymentDetailsRes) Kind() Kind       { return KindPaymentDetails }
func (PaymentDetailsRes) Dialect() Dialect { return Dialect2 }
func (PaymentDetailsRes) IsRequest() bool  { return false }

type CertificateInstallationReq struct {
	Header                   Header
	OEMProvisioningCertDER   []byte
	ListOfRootCertificateIDs []string
}

func (CertificateInstallationReq) Kind() Kind       { return KindCertificateInstallation }
func (CertificateInstallationReq) Dialect() Dialect { return Dialect2 }
func (CertificateInstallationReq) IsRequest() bool  { return true }

type CertificateInstallationRes struct {
	Header            Header
	ResponseCode      ResponseCode
	ContractChainDER  [][]byte
	ContractPrivKeyDER []byte
}

func (CertificateInstallationRes) Kind() Kind       { return KindCertificateInstallation }
func (CertificateInstallationRes) Dialect() Dialect { return Dialect2 }
func (CertificateInstallationRes) IsRequest() bool  { return false }

type AuthorizationReq struct {
	Header       Header
	GenChallenge []byte // PnC only
}

func (AuthorizationReq) Kind() Kind       { return KindAuthorization }
func (AuthorizationReq) Dialect() Dialect { return Dialect2 }
func (AuthorizationReq) IsRequest() bool  { return true }

type AuthorizationRes struct {
	Header       Header
	ResponseCode ResponseCode
	// Ongoing mirrors EVSEProcessing=Ongoing: the EVCC should retry rather
	// than treat this as a hard failure.
	Ongoing bool
}

func (AuthorizationRes) Kind() Kind       { return KindAuthorization }
func (AuthorizationRes) Dialect() Dialect { return Dialect2 }
func (AuthorizationRes) IsRequest() bool  { return false }

type ChargeParameterDiscoveryReq struct {
	Header           Header
	RequestedMode    EnergyTransferMode
	MaxPowerW        float64
	DepartureTime    *int64
}

func (ChargeParameterDiscoveryReq) Kind() Kind       { return KindChargeParameterDiscovery }
func (ChargeParameterDiscoveryReq) Dialect() Dialect { return Dialect2 }
func (ChargeParameterDiscoveryReq) IsRequest() bool  { return true }

type ChargeParameterDiscoveryRes struct {
	Header       Header
	ResponseCode ResponseCode
	Schedules    []ChargingSchedule
	EVSEProcessing string // "Finished" | "Ongoing"
}

func (ChargeParameterDiscoveryRes) Kind() Kind       { return KindChargeParameterDiscovery }
func (ChargeParameterDiscoveryRes) Dialect() Dialect { return Dialect2 }
func (ChargeParameterDiscoveryRes) IsRequest() bool  { return false }

type CableCheckReq struct {
	Header Header
}

func (CableCheckReq) Kind() Kind       { return KindCableCheck }
func (CableCheckReq) Dialect() Dialect { return Dialect2 }
func (CableCheckReq) IsRequest() bool  { return true }

type CableCheckRes struct {
	Header         Header
	ResponseCode   ResponseCode
	EVSEProcessing string
}

func (CableCheckRes) Kind() Kind       { return KindCableCheck }
func (CableCheckRes) Dialect() Dialect { return Dialect2 }
func (CableCheckRes) IsRequest() bool  { return false }

type PreChargeReq struct {
	Header          Header
	TargetVoltageV  float64
	PresentVoltageV float64
}

func (PreChargeReq) Kind() Kind       { return KindPreCharge }
func (PreChargeReq) Dialect() Dialect { return Dialect2 }
func (PreChargeReq) IsRequest() bool  { return true }

type PreChargeRes struct {
	Header          Header
	ResponseCode    ResponseCode
	PresentVoltageV float64
}

func (PreChargeRes) Kind() Kind       { return KindPreCharge }
func (PreChargeRes) Dialect() Dialect { return Dialect2 }
func (PreChargeRes) IsRequest() bool  { return false }

// ChargeProgress distinguishes the Start and Stop phases of PowerDelivery,
// which share a Kind but drive opposite transitions.
type ChargeProgress uint8

const (
	ChargeProgressStart ChargeProgress = iota
	ChargeProgressStop
	ChargeProgressRenegotiate
)

type PowerDeliveryReq struct {
	Header         Header
	Progress       ChargeProgress
	ScheduleID     int
}

func (PowerDeliveryReq) Kind() Kind       { return KindPowerDelivery }
func (PowerDeliveryReq) Dialect() Dialect { return Dialect2 }
func (PowerDeliveryReq) IsRequest() bool  { return true }

type PowerDeliveryRes struct {
	Header       Header
	ResponseCode ResponseCode
}

func (PowerDeliveryRes) Kind() Kind       { return KindPowerDelivery }
func (PowerDeliveryRes) Dialect() Dialect { return Dialect2 }
func (PowerDeliveryRes) IsRequest() bool  { return false }

// CurrentDemandReq is the DC charge-loop request. AC sessions use
// ChargingStatusReq instead; both share KindChargeLoop because they drive
// the identical loop transition.
type CurrentDemandReq struct {
	Header             Header
	EVTargetCurrentA   float64
	EVTargetVoltageV   float64
	EVMaximumVoltageV  float64
	ChargingComplete   bool
}

func (CurrentDemandReq) Kind() Kind       { return KindChargeLoop }
func (CurrentDemandReq) Dialect() Dialect { return Dialect2 }
func (CurrentDemandReq) IsRequest() bool  { return true }

type CurrentDemandRes struct {
	Header            Header
	ResponseCode      ResponseCode
	PresentCurrentA   float64
	PresentVoltageV   float64
	EVSENotification  EVSENotification
}

func (CurrentDemandRes) Kind() Kind       { return KindChargeLoop }
func (CurrentDemandRes) Dialect() Dialect { return Dialect2 }
func (CurrentDemandRes) IsRequest() bool  { return false }

// ChargingStatusReq is the AC charge-loop request.
type ChargingStatusReq struct {
	Header Header
}

func (ChargingStatusReq) Kind() Kind       { return KindChargeLoop }
func (ChargingStatusReq) Dialect() Dialect { return Dialect2 }
func (ChargingStatusReq) IsRequest() bool  { return true }

type ChargingStatusRes struct {
	Header           Header
	ResponseCode     ResponseCode
	PresentPowerW    float64
	EVSENotification EVSENotification
}

func (ChargingStatusRes) Kind() Kind       { return KindChargeLoop }
func (ChargingStatusRes) Dialect() Dialect { return Dialect2 }
func (ChargingStatusRes) IsRequest() bool  { return false }

type WeldingDetectionReq struct {
	Header         Header
	EVPresentVoltageV float64
}

func (WeldingDetectionReq) Kind() Kind       { return KindWeldingDetection }
func (WeldingDetectionReq) Dialect() Dialect { return Dialect2 }
func (WeldingDetectionReq) IsRequest() bool  { return true }

type WeldingDetectionRes struct {
	Header             Header
	ResponseCode       ResponseCode
	EVSEPresentVoltageV float64
}

func (WeldingDetectionRes) Kind() Kind       { return KindWeldingDetection }
func (WeldingDetectionRes) Dialect() Dialect { return Dialect2 }
func (WeldingDetectionRes) IsRequest() bool  { return false }

// ChargingSession mirrors the schema's Terminate|Pause enum on
// SessionStopReq.
type ChargingSession uint8

const (
	ChargingSessionTerminate ChargingSession = iota
	ChargingSessionPause
)

type SessionStopReq struct {
	Header          Header
	ChargingSession ChargingSession
}

func (SessionStopReq) Kind() Kind       { return KindSessionStop }
func (SessionStopReq) Dialect() Dialect { return Dialect2 }
func (SessionStopReq) IsRequest() bool  { return true }

type SessionStopRes struct {
	Header       Header
	ResponseCode ResponseCode
}

func (SessionStopRes) Kind() Kind       { return KindSessionStop }
func (SessionStopRes) Dialect() Dialect { return Dialect2 }
func (SessionStopRes) IsRequest() bool  { return false }
