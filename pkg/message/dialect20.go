package message

// Body types for ISO 15118-20. The -20 handshake and service flow renames
// several -2 phases (PaymentServiceSelection -> ServiceSelection,
// ChargeParameterDiscovery -> ScheduleExchange) and adds AuthorizationSetup
// ahead of Authorization; the teacher codec's own -20 message catalogue
// (pkg/exi/phase2_moderate.go, phase3_complex.go, control_loop.go) is the
// source for which fields matter operationally.

type SessionSetupReq20 struct {
	Header Header
	EVCCID []byte
}

func (SessionSetupReq20) Kind() Kind       { return KindSessionSetup }
func (SessionSetupReq20) Dialect() Dialect { return Dialect20 }
func (SessionSetupReq20) IsRequest() bool  { return true }

type SessionSetupRes20 struct {
	Header       Header
	ResponseCode ResponseCode
	EVSEID       string
}

func (SessionSetupRes20) Kind() Kind       { return KindSessionSetup }
func (SessionSetupRes20) Dialect() Dialect { return Dialect20 }
func (SessionSetupRes20) IsRequest() bool  { return false }

// AuthorizationSetupReq20 asks the SECC which authorization services (EIM,
// PnC) and, for PnC, which contract-cert installation service it offers.
type AuthorizationSetupReq20 struct {
	Header Header
}

func (AuthorizationSetupReq20) Kind() Kind       { return KindAuthorizationSetup }
func (AuthorizationSetupReq20) Dialect() Dialect { return Dialect20 }
func (AuthorizationSetupReq20) IsRequest() bool  { return true }

type AuthorizationSetupRes20 struct {
	Header                       Header
	ResponseCode                 ResponseCode
	AuthServices                 []AuthorizationMethod
	CertificateInstallationOffered bool
	GenChallenge                 []byte // PnC
}

func (AuthorizationSetupRes20) Kind() Kind       { return KindAuthorizationSetup }
func (AuthorizationSetupRes20) Dialect() Dialect { return Dialect20 }
func (AuthorizationSetupRes20) IsRequest() bool  { return false }

type AuthorizationReq20 struct {
	Header       Header
	SelectedAuth AuthorizationMethod
	GenChallenge []byte // PnC: signed challenge response
}

func (AuthorizationReq20) Kind() Kind       { return KindAuthorization }
func (AuthorizationReq20) Dialect() Dialect { return Dialect20 }
func (AuthorizationReq20) IsRequest() bool  { return true }

type AuthorizationRes20 struct {
	Header          Header
	ResponseCode    ResponseCode
	EVSEProcessing  string // "Finished" | "Ongoing"
}

func (AuthorizationRes20) Kind() Kind       { return KindAuthorization }
func (AuthorizationRes20) Dialect() Dialect { return Dialect20 }
func (AuthorizationRes20) IsRequest() bool  { return false }

type ServiceDiscoveryReq20 struct {
	Header        Header
	SupportedEnergyServices []EnergyTransferMode
}

func (ServiceDiscoveryReq20) Kind() Kind       { return KindServiceDiscovery }
func (ServiceDiscoveryReq20) Dialect() Dialect { return Dialect20 }
func (ServiceDiscoveryReq20) IsRequest() bool  { return true }

type ServiceDiscoveryRes20 struct {
	Header       Header
	ResponseCode ResponseCode
	Services     []Service
}

func (ServiceDiscoveryRes20) Kind() Kind       { return KindServiceDiscovery }
func (ServiceDiscoveryRes20) Dialect() Dialect { return Dialect20 }
func (ServiceDiscoveryRes20) IsRequest() bool  { return false }

type ServiceDetailReq20 struct {
	Header    Header
	ServiceID int
}

func (ServiceDetailReq20) Kind() Kind       { return KindServiceDetail }
func (ServiceDetailReq20) Dialect() Dialect { return Dialect20 }
func (ServiceDetailReq20) IsRequest() bool  { return true }

type ServiceDetailRes20 struct {
	Header       Header
	ResponseCode ResponseCode
	ServiceID    int
	Parameters   map[string]string
}

func (ServiceDetailRes20) Kind() Kind       { return KindServiceDetail }
func (ServiceDetailRes20) Dialect() Dialect { return Dialect20 }
func (ServiceDetailRes20) IsRequest() bool  { return false }

type ServiceSelectionReq20 struct {
	Header            Header
	SelectedServiceID int
	SelectedMode      EnergyTransferMode
}

func (ServiceSelectionReq20) Kind() Kind       { return KindServiceSelection }
func (ServiceSelectionReq20) Dialect() Dialect { return Dialect20 }
func (ServiceSelectionReq20) IsRequest() bool  { return true }

type ServiceSelectionRes20 struct {
	Header       Header
	ResponseCode ResponseCode
}

func (ServiceSelectionRes20) Kind() Kind       { return KindServiceSelection }
func (ServiceSelectionRes20) Dialect() Dialect { return Dialect20 }
func (ServiceSelectionRes20) IsRequest() bool  { return false }

type CertificateInstallationReq20 struct {
	Header                 Header
	OEMProvisioningCertDER []byte
	RootCertIDs            []string
}

func (CertificateInstallationReq20) Kind() Kind       { return KindCertificateInstallation }
func (CertificateInstallationReq20) Dialect() Dialect { return Dialect20 }
func (CertificateInstallationReq20) IsRequest() bool  { return true }

type CertificateInstallationRes20 struct {
	Header             Header
	ResponseCode       ResponseCode
	ContractChainDER   [][]byte
	ContractPrivKeyDER []byte
}

func (CertificateInstallationRes20) Kind() Kind       { return KindCertificateInstallation }
func (CertificateInstallationRes20) Dialect() Dialect { return Dialect20 }
func (CertificateInstallationRes20) IsRequest() bool  { return false }

// ScheduleExchangeReq20 is the -20 analogue of ChargeParameterDiscoveryReq.
type ScheduleExchangeReq20 struct {
	Header        Header
	RequestedMode EnergyTransferMode
	MaxPowerW     float64
	DepartureTime *int64
}

func (ScheduleExchangeReq20) Kind() Kind       { return KindChargeParameterDiscovery }
func (ScheduleExchangeReq20) Dialect() Dialect { return Dialect20 }
func (ScheduleExchangeReq20) IsRequest() bool  { return true }

type ScheduleExchangeRes20 struct {
	Header         Header
	ResponseCode   ResponseCode
	Schedules      []ChargingSchedule
	EVSEProcessing string
}

func (ScheduleExchangeRes20) Kind() Kind       { return KindChargeParameterDiscovery }
func (ScheduleExchangeRes20) Dialect() Dialect { return Dialect20 }
func (ScheduleExchangeRes20) IsRequest() bool  { return false }

type CableCheckReq20 struct{ Header Header }

func (CableCheckReq20) Kind() Kind       { return KindCableCheck }
func (CableCheckReq20) Dialect() Dialect { return Dialect20 }
func (CableCheckReq20) IsRequest() bool  { return true }

type CableCheckRes20 struct {
	Header         Header
	ResponseCode   ResponseCode
	EVSEProcessing string
}

func (CableCheckRes20) Kind() Kind       { return KindCableCheck }
func (CableCheckRes20) Dialect() Dialect { return Dialect20 }
func (CableCheckRes20) IsRequest() bool  { return false }

type PreChargeReq20 struct {
	Header          Header
	TargetVoltageV  float64
	PresentVoltageV float64
}

func (PreChargeReq20) Kind() Kind       { return KindPreCharge }
func (PreChargeReq20) Dialect() Dialect { return Dialect20 }
func (PreChargeReq20) IsRequest() bool  { return true }

type PreChargeRes20 struct {
	Header          Header
	ResponseCode    ResponseCode
	PresentVoltageV float64
}

func (PreChargeRes20) Kind() Kind       { return KindPreCharge }
func (PreChargeRes20) Dialect() Dialect { return Dialect20 }
func (PreChargeRes20) IsRequest() bool  { return false }

type PowerDeliveryReq20 struct {
	Header     Header
	Progress   ChargeProgress
	ScheduleID int
	// BPTChannel selects the bidirectional power transfer channel when the
	// selected mode is ModeDCBidirectional; zero value otherwise.
	BPTChannel int
}

func (PowerDeliveryReq20) Kind() Kind       { return KindPowerDelivery }
func (PowerDeliveryReq20) Dialect() Dialect { return Dialect20 }
func (PowerDeliveryReq20) IsRequest() bool  { return true }

type PowerDeliveryRes20 struct {
	Header       Header
	ResponseCode ResponseCode
}

func (PowerDeliveryRes20) Kind() Kind       { return KindPowerDelivery }
func (PowerDeliveryRes20) Dialect() Dialect { return Dialect20 }
func (PowerDeliveryRes20) IsRequest() bool  { return false }

// ChargeLoopReq20 generalizes the -20 control-loop request (the teacher
// codec's CLReqControlMode), carried for both AC and DC energy transfer.
type ChargeLoopReq20 struct {
	Header           Header
	EVTargetCurrentA float64
	EVTargetPowerW   float64
	ChargingComplete bool
}

func (ChargeLoopReq20) Kind() Kind       { return KindChargeLoop }
func (ChargeLoopReq20) Dialect() Dialect { return Dialect20 }
func (ChargeLoopReq20) IsRequest() bool  { return true }

type ChargeLoopRes20 struct {
	Header           Header
	ResponseCode     ResponseCode
	PresentCurrentA  float64
	PresentPowerW    float64
	EVSENotification EVSENotification
}

func (ChargeLoopRes20) Kind() Kind       { return KindChargeLoop }
func (ChargeLoopRes20) Dialect() Dialect { return Dialect20 }
func (ChargeLoopRes20) IsRequest() bool  { return false }

// VehicleCheckInReq20 is the supplemented pre-session parking-method
// exchange (see SPEC_FULL.md "Supplemented features").
type VehicleCheckInReq20 struct {
	Header           Header
	EVCheckInStatus  string
	ParkingMethod    *string
}

func (VehicleCheckInReq20) Kind() Kind       { return KindVehicleCheckIn }
func (VehicleCheckInReq20) Dialect() Dialect { return Dialect20 }
func (VehicleCheckInReq20) IsRequest() bool  { return true }

type VehicleCheckInRes20 struct {
	Header       Header
	ResponseCode ResponseCode
}

func (VehicleCheckInRes20) Kind() Kind       { return KindVehicleCheckIn }
func (VehicleCheckInRes20) Dialect() Dialect { return Dialect20 }
func (VehicleCheckInRes20) IsRequest() bool  { return false }

type VehicleCheckOutReq20 struct {
	Header            Header
	EVCheckOutStatus  string
	CheckOutTime      int64
}

func (VehicleCheckOutReq20) Kind() Kind       { return KindVehicleCheckOut }
func (VehicleCheckOutReq20) Dialect() Dialect { return Dialect20 }
func (VehicleCheckOutReq20) IsRequest() bool  { return true }

type VehicleCheckOutRes20 struct {
	Header       Header
	ResponseCode ResponseCode
}

func (VehicleCheckOutRes20) Kind() Kind       { return KindVehicleCheckOut }
func (VehicleCheckOutRes20) Dialect() Dialect { return Dialect20 }
func (VehicleCheckOutRes20) IsRequest() bool  { return false }

// MeteringConfirmationReq20 is the supplemented metering receipt
// exchange, legal from the -20 charge loop.
type MeteringConfirmationReq20 struct {
	Header        Header
	MeterReadingWh float64
	MeterSignature []byte
}

func (MeteringConfirmationReq20) Kind() Kind       { return KindMeteringConfirmation }
func (MeteringConfirmationReq20) Dialect() Dialect { return Dialect20 }
func (MeteringConfirmationReq20) IsRequest() bool  { return true }

type MeteringConfirmationRes20 struct {
	Header       Header
	ResponseCode ResponseCode
}

func (MeteringConfirmationRes20) Kind() Kind       { return KindMeteringConfirmation }
func (MeteringConfirmationRes20) Dialect() Dialect { return Dialect20 }
func (MeteringConfirmationRes20) IsRequest() bool  { return false }

type SessionStopReq20 struct {
	Header          Header
	ChargingSession ChargingSession
}

func (SessionStopReq20) Kind() Kind       { return KindSessionStop }
func (SessionStopReq20) Dialect() Dialect { return Dialect20 }
func (SessionStopReq20) IsRequest() bool  { return true }

type SessionStopRes20 struct {
	Header       Header
	ResponseCode ResponseCode
}

func (SessionStopRes20) Kind() Kind       { return KindSessionStop }
func (SessionStopRes20) Dialect() Dialect { return Dialect20 }
func (SessionStopRes20) IsRequest() bool  { return false }

// SupportedAppProtocolReq20/Res20 reuse the -2 handshake types since the
// negotiation message itself predates dialect selection; see dialect2.go.
