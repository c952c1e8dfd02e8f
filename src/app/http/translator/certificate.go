package translator

import (
	"candlepin/src/app/http/dto"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
)

var certificateSerialTranslator = translate.Func[domain.CertificateSerial, dto.CertificateSerialDTO](
	func(_ *translate.ModelTranslator, src *domain.CertificateSerial, dst *dto.CertificateSerialDTO) (*dto.CertificateSerialDTO, error) {
		dst.Timestamped = stamps(src.Created, src.Updated)
		dst.ID = dto.Ptr(src.ID)
		dst.Serial = dto.Ptr(src.Serial)
		dst.Expiration = dto.TimePtr(src.Expiration)
		dst.Collected = dto.Ptr(src.Collected)
		dst.Revoked = dto.Ptr(src.Revoked)
		return dst, nil
	})

var certificateTranslator = translate.Func[domain.Certificate, dto.CertificateDTO](
	func(mt *translate.ModelTranslator, src *domain.Certificate, dst *dto.CertificateDTO) (*dto.CertificateDTO, error) {
		dst.Timestamped = stamps(src.Created, src.Updated)
		dst.ID = src.ID
		dst.Key = src.Key
		dst.Cert = src.Cert

		serial, err := nested[domain.CertificateSerial, dto.CertificateSerialDTO](mt, src.Serial)
		if err != nil {
			return nil, err
		}
		dst.Serial = serial
		return dst, nil
	})
