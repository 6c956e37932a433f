package codec

import (
	"github.com/go-iso15118/hlc/pkg/bitstream"
	"github.com/go-iso15118/hlc/pkg/message"
)

// Encode/decode pairs for ISO 15118-20 message bodies. Shares the wire
// primitives in helpers.go with dialect2.go; only the message shapes
// differ, per the dialects' renamed phases (spec §4.5/§4.6).

func encodeSessionSetupReq20(bs *bitstream.Stream, v *message.SessionSetupReq20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	return writeBytesField(bs, v.EVCCID)
}

func decodeSessionSetupReq20(bs *bitstream.Stream) (*message.SessionSetupReq20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	id, err := readBytesField(bs)
	if err != nil {
		return nil, err
	}
	return &message.SessionSetupReq20{Header: h, EVCCID: id}, nil
}

func encodeSessionSetupRes20(bs *bitstream.Stream, v *message.SessionSetupRes20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	return bs.WriteString(v.EVSEID)
}

func decodeSessionSetupRes20(bs *bitstream.Stream) (*message.SessionSetupRes20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	id, err := bs.ReadString()
	if err != nil {
		return nil, err
	}
	return &message.SessionSetupRes20{Header: h, ResponseCode: rc, EVSEID: id}, nil
}

func encodeAuthorizationSetupReq20(bs *bitstream.Stream, v *message.AuthorizationSetupReq20) error {
	return writeHeader(bs, v.Header)
}

func decodeAuthorizationSetupReq20(bs *bitstream.Stream) (*message.AuthorizationSetupReq20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	return &message.AuthorizationSetupReq20{Header: h}, nil
}

func encodeAuthorizationSetupRes20(bs *bitstream.Stream, v *message.AuthorizationSetupRes20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	if err := bs.WriteUnsignedVar(uint64(len(v.AuthServices))); err != nil {
		return err
	}
	for _, a := range v.AuthServices {
		if err := bs.WriteBits(1, uint32(a)); err != nil {
			return err
		}
	}
	if err := bs.WritePresenceBit(v.CertificateInstallationOffered); err != nil {
		return err
	}
	return writeBytesField(bs, v.GenChallenge)
}

func decodeAuthorizationSetupRes20(bs *bitstream.Stream) (*message.AuthorizationSetupRes20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	n, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	services := make([]message.AuthorizationMethod, 0, n)
	for i := uint64(0); i < n; i++ {
		a, err := bs.ReadBits(1)
		if err != nil {
			return nil, err
		}
		services = append(services, message.AuthorizationMethod(a))
	}
	offered, err := bs.ReadPresenceBit()
	if err != nil {
		return nil, err
	}
	ch, err := readBytesField(bs)
	if err != nil {
		return nil, err
	}
	return &message.AuthorizationSetupRes20{Header: h, ResponseCode: rc, AuthServices: services, CertificateInstallationOffered: offered, GenChallenge: ch}, nil
}

func encodeAuthorizationReq20(bs *bitstream.Stream, v *message.AuthorizationReq20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := bs.WriteBits(1, uint32(v.SelectedAuth)); err != nil {
		return err
	}
	return writeBytesField(bs, v.GenChallenge)
}

func decodeAuthorizationReq20(bs *bitstream.Stream) (*message.AuthorizationReq20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	a, err := bs.ReadBits(1)
	if err != nil {
		return nil, err
	}
	ch, err := readBytesField(bs)
	if err != nil {
		return nil, err
	}
	return &message.AuthorizationReq20{Header: h, SelectedAuth: message.AuthorizationMethod(a), GenChallenge: ch}, nil
}

func encodeAuthorizationRes20(bs *bitstream.Stream, v *message.AuthorizationRes20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	return bs.WriteString(v.EVSEProcessing)
}

func decodeAuthorizationRes20(bs *bitstream.Stream) (*message.AuthorizationRes20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	proc, err := bs.ReadString()
	if err != nil {
		return nil, err
	}
	return &message.AuthorizationRes20{Header: h, ResponseCode: rc, EVSEProcessing: proc}, nil
}

func encodeServiceDiscoveryReq20(bs *bitstream.Stream, v *message.ServiceDiscoveryReq20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := bs.WriteUnsignedVar(uint64(len(v.SupportedEnergyServices))); err != nil {
		return err
	}
	for _, m := range v.SupportedEnergyServices {
		if err := bs.WriteBits(4, uint32(m)); err != nil {
			return err
		}
	}
	return nil
}

func decodeServiceDiscoveryReq20(bs *bitstream.Stream) (*message.ServiceDiscoveryReq20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	n, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	modes := make([]message.EnergyTransferMode, 0, n)
	for i := uint64(0); i < n; i++ {
		m, err := bs.ReadBits(4)
		if err != nil {
			return nil, err
		}
		modes = append(modes, message.EnergyTransferMode(m))
	}
	return &message.ServiceDiscoveryReq20{Header: h, SupportedEnergyServices: modes}, nil
}

func encodeServiceDiscoveryRes20(bs *bitstream.Stream, v *message.ServiceDiscoveryRes20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	return writeServices(bs, v.Services)
}

func decodeServiceDiscoveryRes20(bs *bitstream.Stream) (*message.ServiceDiscoveryRes20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	services, err := readServices(bs)
	if err != nil {
		return nil, err
	}
	return &message.ServiceDiscoveryRes20{Header: h, ResponseCode: rc, Services: services}, nil
}

func encodeServiceDetailReq20(bs *bitstream.Stream, v *message.ServiceDetailReq20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	return bs.WriteUnsignedVar(uint64(v.ServiceID))
}

func decodeServiceDetailReq20(bs *bitstream.Stream) (*message.ServiceDetailReq20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	id, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	return &message.ServiceDetailReq20{Header: h, ServiceID: int(id)}, nil
}

func encodeServiceDetailRes20(bs *bitstream.Stream, v *message.ServiceDetailRes20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	if err := bs.WriteUnsignedVar(uint64(v.ServiceID)); err != nil {
		return err
	}
	return writeStringMap(bs, v.Parameters)
}

func decodeServiceDetailRes20(bs *bitstream.Stream) (*message.ServiceDetailRes20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	id, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	params, err := readStringMap(bs)
	if err != nil {
		return nil, err
	}
	return &message.ServiceDetailRes20{Header: h, ResponseCode: rc, ServiceID: int(id), Parameters: params}, nil
}

func encodeServiceSelectionReq20(bs *bitstream.Stream, v *message.ServiceSelectionReq20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := bs.WriteUnsignedVar(uint64(v.SelectedServiceID)); err != nil {
		return err
	}
	return bs.WriteBits(4, uint32(v.SelectedMode))
}

func decodeServiceSelectionReq20(bs *bitstream.Stream) (*message.ServiceSelectionReq20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	id, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	mode, err := bs.ReadBits(4)
	if err != nil {
		return nil, err
	}
	return &message.ServiceSelectionReq20{Header: h, SelectedServiceID: int(id), SelectedMode: message.EnergyTransferMode(mode)}, nil
}

func encodeServiceSelectionRes20(bs *bitstream.Stream, v *message.ServiceSelectionRes20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	return writeResponseCode(bs, v.ResponseCode)
}

func decodeServiceSelectionRes20(bs *bitstream.Stream) (*message.ServiceSelectionRes20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	return &message.ServiceSelectionRes20{Header: h, ResponseCode: rc}, nil
}

func encodeCertificateInstallationReq20(bs *bitstream.Stream, v *message.CertificateInstallationReq20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeBytesField(bs, v.OEMProvisioningCertDER); err != nil {
		return err
	}
	return writeStringSlice(bs, v.RootCertIDs)
}

func decodeCertificateInstallationReq20(bs *bitstream.Stream) (*message.CertificateInstallationReq20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	cert, err := readBytesField(bs)
	if err != nil {
		return nil, err
	}
	roots, err := readStringSlice(bs)
	if err != nil {
		return nil, err
	}
	return &message.CertificateInstallationReq20{Header: h, OEMProvisioningCertDER: cert, RootCertIDs: roots}, nil
}

func encodeCertificateInstallationRes20(bs *bitstream.Stream, v *message.CertificateInstallationRes20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	if err := writeByteChainField(bs, v.ContractChainDER); err != nil {
		return err
	}
	return writeBytesField(bs, v.ContractPrivKeyDER)
}

func decodeCertificateInstallationRes20(bs *bitstream.Stream) (*message.CertificateInstallationRes20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	chain, err := readByteChainField(bs)
	if err != nil {
		return nil, err
	}
	key, err := readBytesField(bs)
	if err != nil {
		return nil, err
	}
	return &message.CertificateInstallationRes20{Header: h, ResponseCode: rc, ContractChainDER: chain, ContractPrivKeyDER: key}, nil
}

func encodeScheduleExchangeReq20(bs *bitstream.Stream, v *message.ScheduleExchangeReq20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := bs.WriteBits(4, uint32(v.RequestedMode)); err != nil {
		return err
	}
	if err := writeScaledFloat(bs, v.MaxPowerW); err != nil {
		return err
	}
	return writeOptionalInt64(bs, v.DepartureTime)
}

func decodeScheduleExchangeReq20(bs *bitstream.Stream) (*message.ScheduleExchangeReq20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	mode, err := bs.ReadBits(4)
	if err != nil {
		return nil, err
	}
	power, err := readScaledFloat(bs)
	if err != nil {
		return nil, err
	}
	dep, err := readOptionalInt64(bs)
	if err != nil {
		return nil, err
	}
	return &message.ScheduleExchangeReq20{Header: h, RequestedMode: message.EnergyTransferMode(mode), MaxPowerW: power, DepartureTime: dep}, nil
}

func encodeScheduleExchangeRes20(bs *bitstream.Stream, v *message.ScheduleExchangeRes20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	if err := writeSchedules(bs, v.Schedules); err != nil {
		return err
	}
	return bs.WriteString(v.EVSEProcessing)
}

func decodeScheduleExchangeRes20(bs *bitstream.Stream) (*message.ScheduleExchangeRes20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	schedules, err := readSchedules(bs)
	if err != nil {
		return nil, err
	}
	proc, err := bs.ReadString()
	if err != nil {
		return nil, err
	}
	return &message.ScheduleExchangeRes20{Header: h, ResponseCode: rc, Schedules: schedules, EVSEProcessing: proc}, nil
}

func encodeCableCheckReq20(bs *bitstream.Stream, v *message.CableCheckReq20) error {
	return writeHeader(bs, v.Header)
}

func decodeCableCheckReq20(bs *bitstream.Stream) (*message.CableCheckReq20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	return &message.CableCheckReq20{Header: h}, nil
}

func encodeCableCheckRes20(bs *bitstream.Stream, v *message.CableCheckRes20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	return bs.WriteString(v.EVSEProcessing)
}

func decodeCableCheckRes20(bs *bitstream.Stream) (*message.CableCheckRes20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	proc, err := bs.ReadString()
	if err != nil {
		return nil, err
	}
	return &message.CableCheckRes20{Header: h, ResponseCode: rc, EVSEProcessing: proc}, nil
}

func encodePreChargeReq20(bs *bitstream.Stream, v *message.PreChargeReq20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeScaledFloat(bs, v.TargetVoltageV); err != nil {
		return err
	}
	return writeScaledFloat(bs, v.PresentVoltageV)
}

func decodePreChargeReq20(bs *bitstream.Stream) (*message.PreChargeReq20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	target, err := readScaledFloat(bs)
	if err != nil {
		return nil, err
	}
	present, err := readScaledFloat(bs)
	if err != nil {
		return nil, err
	}
	return &message.PreChargeReq20{Header: h, TargetVoltageV: target, PresentVoltageV: present}, nil
}

func encodePreChargeRes20(bs *bitstream.Stream, v *message.PreChargeRes20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	return writeScaledFloat(bs, v.PresentVoltageV)
}

func decodePreChargeRes20(bs *bitstream.Stream) (*message.PreChargeRes20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	v, err := readScaledFloat(bs)
	if err != nil {
		return nil, err
	}
	return &message.PreChargeRes20{Header: h, ResponseCode: rc, PresentVoltageV: v}, nil
}

func encodePowerDeliveryReq20(bs *bitstream.Stream, v *message.PowerDeliveryReq20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := bs.WriteBits(2, uint32(v.Progress)); err != nil {
		return err
	}
	if err := bs.WriteUnsignedVar(uint64(v.ScheduleID)); err != nil {
		return err
	}
	return bs.WriteUnsignedVar(uint64(v.BPTChannel))
}

func decodePowerDeliveryReq20(bs *bitstream.Stream) (*message.PowerDeliveryReq20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	prog, err := bs.ReadBits(2)
	if err != nil {
		return nil, err
	}
	sid, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	ch, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	return &message.PowerDeliveryReq20{Header: h, Progress: message.ChargeProgress(prog), ScheduleID: int(sid), BPTChannel: int(ch)}, nil
}

func encodePowerDeliveryRes20(bs *bitstream.Stream, v *message.PowerDeliveryRes20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	return writeResponseCode(bs, v.ResponseCode)
}

func decodePowerDeliveryRes20(bs *bitstream.Stream) (*message.PowerDeliveryRes20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	return &message.PowerDeliveryRes20{Header: h, ResponseCode: rc}, nil
}

func encodeChargeLoopReq20(bs *bitstream.Stream, v *message.ChargeLoopReq20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeScaledFloat(bs, v.EVTargetCurrentA); err != nil {
		return err
	}
	if err := writeScaledFloat(bs, v.EVTargetPowerW); err != nil {
		return err
	}
	return bs.WritePresenceBit(v.ChargingComplete)
}

func decodeChargeLoopReq20(bs *bitstream.Stream) (*message.ChargeLoopReq20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	cur, err := readScaledFloat(bs)
	if err != nil {
		return nil, err
	}
	power, err := readScaledFloat(bs)
	if err != nil {
		return nil, err
	}
	complete, err := bs.ReadPresenceBit()
	if err != nil {
		return nil, err
	}
	return &message.ChargeLoopReq20{Header: h, EVTargetCurrentA: cur, EVTargetPowerW: power, ChargingComplete: complete}, nil
}

func encodeChargeLoopRes20(bs *bitstream.Stream, v *message.ChargeLoopRes20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	if err := writeScaledFloat(bs, v.PresentCurrentA); err != nil {
		return err
	}
	if err := writeScaledFloat(bs, v.PresentPowerW); err != nil {
		return err
	}
	return bs.WriteBits(2, uint32(v.EVSENotification))
}

func decodeChargeLoopRes20(bs *bitstream.Stream) (*message.ChargeLoopRes20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	cur, err := readScaledFloat(bs)
	if err != nil {
		return nil, err
	}
	power, err := readScaledFloat(bs)
	if err != nil {
		return nil, err
	}
	notif, err := bs.ReadBits(2)
	if err != nil {
		return nil, err
	}
	return &message.ChargeLoopRes20{Header: h, ResponseCode: rc, PresentCurrentA: cur, PresentPowerW: power, EVSENotification: message.EVSENotification(notif)}, nil
}

func encodeVehicleCheckInReq20(bs *bitstream.Stream, v *message.VehicleCheckInReq20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := bs.WriteString(v.EVCheckInStatus); err != nil {
		return err
	}
	return writeOptionalString(bs, v.ParkingMethod)
}

func decodeVehicleCheckInReq20(bs *bitstream.Stream) (*message.VehicleCheckInReq20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	status, err := bs.ReadString()
	if err != nil {
		return nil, err
	}
	method, err := readOptionalString(bs)
	if err != nil {
		return nil, err
	}
	return &message.VehicleCheckInReq20{Header: h, EVCheckInStatus: status, ParkingMethod: method}, nil
}

func encodeVehicleCheckInRes20(bs *bitstream.Stream, v *message.VehicleCheckInRes20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	return writeResponseCode(bs, v.ResponseCode)
}

func decodeVehicleCheckInRes20(bs *bitstream.Stream) (*message.VehicleCheckInRes20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	return &message.VehicleCheckInRes20{Header: h, ResponseCode: rc}, nil
}

func encodeVehicleCheckOutReq20(bs *bitstream.Stream, v *message.VehicleCheckOutReq20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := bs.WriteString(v.EVCheckOutStatus); err != nil {
		return err
	}
	return bs.WriteUnsignedVar(uint64(v.CheckOutTime))
}

func decodeVehicleCheckOutReq20(bs *bitstream.Stream) (*message.VehicleCheckOutReq20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	status, err := bs.ReadString()
	if err != nil {
		return nil, err
	}
	t, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	return &message.VehicleCheckOutReq20{Header: h, EVCheckOutStatus: status, CheckOutTime: int64(t)}, nil
}

func encodeVehicleCheckOutRes20(bs *bitstream.Stream, v *message.VehicleCheckOutRes20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	return writeResponseCode(bs, v.ResponseCode)
}

func decodeVehicleCheckOutRes20(bs *bitstream.Stream) (*message.VehicleCheckOutRes20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	return &message.VehicleCheckOutRes20{Header: h, ResponseCode: rc}, nil
}

func encodeMeteringConfirmationReq20(bs *bitstream.Stream, v *message.MeteringConfirmationReq20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeScaledFloat(bs, v.MeterReadingWh); err != nil {
		return err
	}
	return writeBytesField(bs, v.MeterSignature)
}

func decodeMeteringConfirmationReq20(bs *bitstream.Stream) (*message.MeteringConfirmationReq20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	reading, err := readScaledFloat(bs)
	if err != nil {
		return nil, err
	}
	sig, err := readBytesField(bs)
	if err != nil {
		return nil, err
	}
	return &message.MeteringConfirmationReq20{Header: h, MeterReadingWh: reading, MeterSignature: sig}, nil
}

func encodeMeteringConfirmationRes20(bs *bitstream.Stream, v *message.MeteringConfirmationRes20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	return writeResponseCode(bs, v.ResponseCode)
}

func decodeMeteringConfirmationRes20(bs *bitstream.Stream) (*message.MeteringConfirmationRes20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	return &message.MeteringConfirmationRes20{Header: h, ResponseCode: rc}, nil
}

func encodeSessionStopReq20(bs *bitstream.Stream, v *message.SessionStopReq20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	return bs.WriteBits(1, uint32(v.ChargingSession))
}

func decodeSessionStopReq20(bs *bitstream.Stream) (*message.SessionStopReq20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	cs, err := bs.ReadBits(1)
	if err != nil {
		return nil, err
	}
	return &message.SessionStopReq20{Header: h, ChargingSession: message.ChargingSession(cs)}, nil
}

func encodeSessionStopRes20(bs *bitstream.Stream, v *message.SessionStopRes20) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	return writeResponseCode(bs, v.ResponseCode)
}

func decodeSessionStopRes20(bs *bitstream.Stream) (*message.SessionStopRes20, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	return &message.SessionStopRes20{Header: h, ResponseCode: rc}, nil
}
