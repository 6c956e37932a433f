package codec

import (
	"github.com/go-iso15118/hlc/pkg/bitstream"
	"github.com/go-iso15118/hlc/pkg/message"
)

// Encode/decode pairs for ISO 15118-2 message bodies. Each follows the
// teacher codec's per-message-kind pattern (pkg/exi phase*.go in the
// retrieval pack): a small, explicit field-by-field writer/reader, with a
// presence bit ahead of every optional field and a length prefix ahead of
// every repeating group.

func encodeSupportedAppProtocolReq(bs *bitstream.Stream, v *message.SupportedAppProtocolReq) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := bs.WriteUnsignedVar(uint64(len(v.Protocols))); err != nil {
		return err
	}
	for _, p := range v.Protocols {
		if err := bs.WriteString(p.Namespace); err != nil {
			return err
		}
		if err := bs.WriteUnsignedVar(uint64(p.Major)); err != nil {
			return err
		}
		if err := bs.WriteUnsignedVar(uint64(p.Minor)); err != nil {
			return err
		}
		if err := bs.WriteOctet(p.SchemaID); err != nil {
			return err
		}
	}
	return nil
}

func decodeSupportedAppProtocolReq(bs *bitstream.Stream) (*message.SupportedAppProtocolReq, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	n, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	protos := make([]message.AppProtocol, 0, n)
	for i := uint64(0); i < n; i++ {
		ns, err := bs.ReadString()
		if err != nil {
			return nil, err
		}
		maj, err := bs.ReadUnsignedVar()
		if err != nil {
			return nil, err
		}
		min, err := bs.ReadUnsignedVar()
		if err != nil {
			return nil, err
		}
		sid, err := bs.ReadOctet()
		if err != nil {
			return nil, err
		}
		protos = append(protos, message.AppProtocol{Namespace: ns, Major: int(maj), Minor: int(min), SchemaID: sid})
	}
	return &message.SupportedAppProtocolReq{Header: h, Protocols: protos}, nil
}

func encodeSupportedAppProtocolRes(bs *bitstream.Stream, v *message.SupportedAppProtocolRes) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	if err := bs.WriteOctet(v.SchemaID); err != nil {
		return err
	}
	return bs.WriteBits(4, uint32(v.NegotiatedDialect))
}

func decodeSupportedAppProtocolRes(bs *bitstream.Stream) (*message.SupportedAppProtocolRes, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	sid, err := bs.ReadOctet()
	if err != nil {
		return nil, err
	}
	d, err := bs.ReadBits(4)
	if err != nil {
		return nil, err
	}
	return &message.SupportedAppProtocolRes{Header: h, ResponseCode: rc, SchemaID: sid, NegotiatedDialect: message.Dialect(d)}, nil
}

func encodeSessionSetupReq(bs *bitstream.Stream, v *message.SessionSetupReq) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	return writeBytesField(bs, v.EVCCID)
}

func decodeSessionSetupReq(bs *bitstream.Stream) (*message.SessionSetupReq, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	id, err := readBytesField(bs)
	if err != nil {
		return nil, err
	}
	return &message.SessionSetupReq{Header: h, EVCCID: id}, nil
}

func encodeSessionSetupRes(bs *bitstream.Stream, v *message.SessionSetupRes) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	if err := bs.WriteString(v.EVSEID); err != nil {
		return err
	}
	return bs.WriteUnsignedVar(uint64(v.Timestamp))
}

func decodeSessionSetupRes(bs *bitstream.Stream) (*message.SessionSetupRes, error) {
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
	ts, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	return &message.SessionSetupRes{Header: h, ResponseCode: rc, EVSEID: id, Timestamp: int64(ts)}, nil
}

func encodeServiceDiscoveryReq(bs *bitstream.Stream, v *message.ServiceDiscoveryReq) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeOptionalString(bs, v.Scope); err != nil {
		return err
	}
	return writeOptionalString(bs, v.Category)
}

func decodeServiceDiscoveryReq(bs *bitstream.Stream) (*message.ServiceDiscoveryReq, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	scope, err := readOptionalString(bs)
	if err != nil {
		return nil, err
	}
	cat, err := readOptionalString(bs)
	if err != nil {
		return nil, err
	}
	return &message.ServiceDiscoveryReq{Header: h, Scope: scope, Category: cat}, nil
}

func encodeServiceDiscoveryRes(bs *bitstream.Stream, v *message.ServiceDiscoveryRes) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	if err := writeServices(bs, v.Services); err != nil {
		return err
	}
	if err := bs.WriteUnsignedVar(uint64(len(v.PaymentMethods))); err != nil {
		return err
	}
	for _, m := range v.PaymentMethods {
		if err := bs.WriteBits(1, uint32(m)); err != nil {
			return err
		}
	}
	return bs.WritePresenceBit(v.CertInstallOffered)
}

func decodeServiceDiscoveryRes(bs *bitstream.Stream) (*message.ServiceDiscoveryRes, error) {
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
	n, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	methods := make([]message.AuthorizationMethod, 0, n)
	for i := uint64(0); i < n; i++ {
		m, err := bs.ReadBits(1)
		if err != nil {
			return nil, err
		}
		methods = append(methods, message.AuthorizationMethod(m))
	}
	certOffered, err := bs.ReadPresenceBit()
	if err != nil {
		return nil, err
	}
	return &message.ServiceDiscoveryRes{Header: h, ResponseCode: rc, Services: services, PaymentMethods: methods, CertInstallOffered: certOffered}, nil
}

func encodeServiceDetailReq(bs *bitstream.Stream, v *message.ServiceDetailReq) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	return bs.WriteUnsignedVar(uint64(v.ServiceID))
}

func decodeServiceDetailReq(bs *bitstream.Stream) (*message.ServiceDetailReq, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	id, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	return &message.ServiceDetailReq{Header: h, ServiceID: int(id)}, nil
}

func encodeServiceDetailRes(bs *bitstream.Stream, v *message.ServiceDetailRes) error {
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

func decodeServiceDetailRes(bs *bitstream.Stream) (*message.ServiceDetailRes, error) {
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
	return &message.ServiceDetailRes{Header: h, ResponseCode: rc, ServiceID: int(id), Parameters: params}, nil
}

func encodePaymentServiceSelectionReq(bs *bitstream.Stream, v *message.PaymentServiceSelectionReq) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := bs.WriteBits(1, uint32(v.SelectedAuthMethod)); err != nil {
		return err
	}
	return bs.WriteUnsignedVar(uint64(v.SelectedServiceID))
}

func decodePaymentServiceSelectionReq(bs *bitstream.Stream) (*message.PaymentServiceSelectionReq, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	m, err := bs.ReadBits(1)
	if err != nil {
		return nil, err
	}
	id, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	return &message.PaymentServiceSelectionReq{Header: h, SelectedAuthMethod: message.AuthorizationMethod(m), SelectedServiceID: int(id)}, nil
}

func encodePaymentServiceSelectionRes(bs *bitstream.Stream, v *message.PaymentServiceSelectionRes) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	return writeResponseCode(bs, v.ResponseCode)
}

func decodePaymentServiceSelectionRes(bs *bitstream.Stream) (*message.PaymentServiceSelectionRes, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	return &message.PaymentServiceSelectionRes{Header: h, ResponseCode: rc}, nil
}

func encodePaymentDetailsReq(bs *bitstream.Stream, v *message.PaymentDetailsReq) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := bs.WriteString(v.ContractID); err != nil {
		return err
	}
	return writeByteChainField(bs, v.ContractChainDER)
}

func decodePaymentDetailsReq(bs *bitstream.Stream) (*message.PaymentDetailsReq, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	cid, err := bs.ReadString()
	if err != nil {
		return nil, err
	}
	chain, err := readByteChainField(bs)
	if err != nil {
		return nil, err
	}
	return &message.PaymentDetailsReq{Header: h, ContractID: cid, ContractChainDER: chain}, nil
}

func encodePaymentDetailsRes(bs *bitstream.Stream, v *message.PaymentDetailsRes) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	return writeBytesField(bs, v.GenChallenge)
}

func decodePaymentDetailsRes(bs *bitstream.Stream) (*message.PaymentDetailsRes, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	ch, err := readBytesField(bs)
	if err != nil {
		return nil, err
	}
	return &message.PaymentDetailsRes{Header: h, ResponseCode: rc, GenChallenge: ch}, nil
}

func encodeCertificateInstallationReq(bs *bitstream.Stream, v *message.CertificateInstallationReq) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeBytesField(bs, v.OEMProvisioningCertDER); err != nil {
		return err
	}
	return writeStringSlice(bs, v.ListOfRootCertificateIDs)
}

func decodeCertificateInstallationReq(bs *bitstream.Stream) (*message.CertificateInstallationReq, error) {
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
	return &message.CertificateInstallationReq{Header: h, OEMProvisioningCertDER: cert, ListOfRootCertificateIDs: roots}, nil
}

func encodeCertificateInstallationRes(bs *bitstream.Stream, v *message.CertificateInstallationRes) error {
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

func decodeCertificateInstallationRes(bs *bitstream.Stream) (*message.CertificateInstallationRes, error) {
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
	return &message.CertificateInstallationRes{Header: h, ResponseCode: rc, ContractChainDER: chain, ContractPrivKeyDER: key}, nil
}

func encodeAuthorizationReq(bs *bitstream.Stream, v *message.AuthorizationReq) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	return writeBytesField(bs, v.GenChallenge)
}

func decodeAuthorizationReq(bs *bitstream.Stream) (*message.AuthorizationReq, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	ch, err := readBytesField(bs)
	if err != nil {
		return nil, err
	}
	return &message.AuthorizationReq{Header: h, GenChallenge: ch}, nil
}

func encodeAuthorizationRes(bs *bitstream.Stream, v *message.AuthorizationRes) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	return bs.WritePresenceBit(v.Ongoing)
}

func decodeAuthorizationRes(bs *bitstream.Stream) (*message.AuthorizationRes, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	ongoing, err := bs.ReadPresenceBit()
	if err != nil {
		return nil, err
	}
	return &message.AuthorizationRes{Header: h, ResponseCode: rc, Ongoing: ongoing}, nil
}

func encodeChargeParameterDiscoveryReq(bs *bitstream.Stream, v *message.ChargeParameterDiscoveryReq) error {
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

func decodeChargeParameterDiscoveryReq(bs *bitstream.Stream) (*message.ChargeParameterDiscoveryReq, error) {
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
	return &message.ChargeParameterDiscoveryReq{Header: h, RequestedMode: message.EnergyTransferMode(mode), MaxPowerW: power, DepartureTime: dep}, nil
}

func encodeChargeParameterDiscoveryRes(bs *bitstream.Stream, v *message.ChargeParameterDiscoveryRes) error {
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

func decodeChargeParameterDiscoveryRes(bs *bitstream.Stream) (*message.ChargeParameterDiscoveryRes, error) {
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
	return &message.ChargeParameterDiscoveryRes{Header: h, ResponseCode: rc, Schedules: schedules, EVSEProcessing: proc}, nil
}

func encodeCableCheckReq(bs *bitstream.Stream, v *message.CableCheckReq) error {
	return writeHeader(bs, v.Header)
}

func decodeCableCheckReq(bs *bitstream.Stream) (*message.CableCheckReq, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	return &message.CableCheckReq{Header: h}, nil
}

func encodeCableCheckRes(bs *bitstream.Stream, v *message.CableCheckRes) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	return bs.WriteString(v.EVSEProcessing)
}

func decodeCableCheckRes(bs *bitstream.Stream) (*message.CableCheckRes, error) {
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
	return &message.CableCheckRes{Header: h, ResponseCode: rc, EVSEProcessing: proc}, nil
}

func encodePreChargeReq(bs *bitstream.Stream, v *message.PreChargeReq) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeScaledFloat(bs, v.TargetVoltageV); err != nil {
		return err
	}
	return writeScaledFloat(bs, v.PresentVoltageV)
}

func decodePreChargeReq(bs *bitstream.Stream) (*message.PreChargeReq, error) {
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
	return &message.PreChargeReq{Header: h, TargetVoltageV: target, PresentVoltageV: present}, nil
}

func encodePreChargeRes(bs *bitstream.Stream, v *message.PreChargeRes) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	return writeScaledFloat(bs, v.PresentVoltageV)
}

func decodePreChargeRes(bs *bitstream.Stream) (*message.PreChargeRes, error) {
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
	return &message.PreChargeRes{Header: h, ResponseCode: rc, PresentVoltageV: v}, nil
}

func encodePowerDeliveryReq(bs *bitstream.Stream, v *message.PowerDeliveryReq) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := bs.WriteBits(2, uint32(v.Progress)); err != nil {
		return err
	}
	return bs.WriteUnsignedVar(uint64(v.ScheduleID))
}

func decodePowerDeliveryReq(bs *bitstream.Stream) (*message.PowerDeliveryReq, error) {
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
	return &message.PowerDeliveryReq{Header: h, Progress: message.ChargeProgress(prog), ScheduleID: int(sid)}, nil
}

func encodePowerDeliveryRes(bs *bitstream.Stream, v *message.PowerDeliveryRes) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	return writeResponseCode(bs, v.ResponseCode)
}

func decodePowerDeliveryRes(bs *bitstream.Stream) (*message.PowerDeliveryRes, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	return &message.PowerDeliveryRes{Header: h, ResponseCode: rc}, nil
}

func encodeCurrentDemandReq(bs *bitstream.Stream, v *message.CurrentDemandReq) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeScaledFloat(bs, v.EVTargetCurrentA); err != nil {
		return err
	}
	if err := writeScaledFloat(bs, v.EVTargetVoltageV); err != nil {
		return err
	}
	if err := writeScaledFloat(bs, v.EVMaximumVoltageV); err != nil {
		return err
	}
	return bs.WritePresenceBit(v.ChargingComplete)
}

func decodeCurrentDemandReq(bs *bitstream.Stream) (*message.CurrentDemandReq, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	cur, err := readScaledFloat(bs)
	if err != nil {
		return nil, err
	}
	volt, err := readScaledFloat(bs)
	if err != nil {
		return nil, err
	}
	maxV, err := readScaledFloat(bs)
	if err != nil {
		return nil, err
	}
	complete, err := bs.ReadPresenceBit()
	if err != nil {
		return nil, err
	}
	return &message.CurrentDemandReq{Header: h, EVTargetCurrentA: cur, EVTargetVoltageV: volt, EVMaximumVoltageV: maxV, ChargingComplete: complete}, nil
}

func encodeCurrentDemandRes(bs *bitstream.Stream, v *message.CurrentDemandRes) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	if err := writeScaledFloat(bs, v.PresentCurrentA); err != nil {
		return err
	}
	if err := writeScaledFloat(bs, v.PresentVoltageV); err != nil {
		return err
	}
	return bs.WriteBits(2, uint32(v.EVSENotification))
}

func decodeCurrentDemandRes(bs *bitstream.Stream) (*message.CurrentDemandRes, error) {
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
	volt, err := readScaledFloat(bs)
	if err != nil {
		return nil, err
	}
	notif, err := bs.ReadBits(2)
	if err != nil {
		return nil, err
	}
	return &message.CurrentDemandRes{Header: h, ResponseCode: rc, PresentCurrentA: cur, PresentVoltageV: volt, EVSENotification: message.EVSENotification(notif)}, nil
}

func encodeChargingStatusReq(bs *bitstream.Stream, v *message.ChargingStatusReq) error {
	return writeHeader(bs, v.Header)
}

func decodeChargingStatusReq(bs *bitstream.Stream) (*message.ChargingStatusReq, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	return &message.ChargingStatusReq{Header: h}, nil
}

func encodeChargingStatusRes(bs *bitstream.Stream, v *message.ChargingStatusRes) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	if err := writeScaledFloat(bs, v.PresentPowerW); err != nil {
		return err
	}
	return bs.WriteBits(2, uint32(v.EVSENotification))
}

func decodeChargingStatusRes(bs *bitstream.Stream) (*message.ChargingStatusRes, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
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
	return &message.ChargingStatusRes{Header: h, ResponseCode: rc, PresentPowerW: power, EVSENotification: message.EVSENotification(notif)}, nil
}

func encodeWeldingDetectionReq(bs *bitstream.Stream, v *message.WeldingDetectionReq) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	return writeScaledFloat(bs, v.EVPresentVoltageV)
}

func decodeWeldingDetectionReq(bs *bitstream.Stream) (*message.WeldingDetectionReq, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	v, err := readScaledFloat(bs)
	if err != nil {
		return nil, err
	}
	return &message.WeldingDetectionReq{Header: h, EVPresentVoltageV: v}, nil
}

func encodeWeldingDetectionRes(bs *bitstream.Stream, v *message.WeldingDetectionRes) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	if err := writeResponseCode(bs, v.ResponseCode); err != nil {
		return err
	}
	return writeScaledFloat(bs, v.EVSEPresentVoltageV)
}

func decodeWeldingDetectionRes(bs *bitstream.Stream) (*message.WeldingDetectionRes, error) {
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
	return &message.WeldingDetectionRes{Header: h, ResponseCode: rc, EVSEPresentVoltageV: v}, nil
}

func encodeSessionStopReq(bs *bitstream.Stream, v *message.SessionStopReq) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	return bs.WriteBits(1, uint32(v.ChargingSession))
}

func decodeSessionStopReq(bs *bitstream.Stream) (*message.SessionStopReq, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	cs, err := bs.ReadBits(1)
	if err != nil {
		return nil, err
	}
	return &message.SessionStopReq{Header: h, ChargingSession: message.ChargingSession(cs)}, nil
}

func encodeSessionStopRes(bs *bitstream.Stream, v *message.SessionStopRes) error {
	if err := writeHeader(bs, v.Header); err != nil {
		return err
	}
	return writeResponseCode(bs, v.ResponseCode)
}

func decodeSessionStopRes(bs *bitstream.Stream) (*message.SessionStopRes, error) {
	h, err := readHeader(bs)
	if err != nil {
		return nil, err
	}
	rc, err := readResponseCode(bs)
	if err != nil {
		return nil, err
	}
	return &message.SessionStopRes{Header: h, ResponseCode: rc}, nil
}
