package translator

import (
	"encoding/json"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
)

// jobStatusTranslator exposes a JSON result as structured data and anything
// else as a plain string.
var jobStatusTranslator = translate.Func[domain.AsyncJobStatus, dto.AsyncJobStatusDTO](
	func(_ *translate.ModelTranslator, src *domain.AsyncJobStatus, dst *dto.AsyncJobStatusDTO) (*dto.AsyncJobStatusDTO, error) {
		dst.Timestamped = stamps(src.Created, src.Updated)
		dst.ID = src.ID
		dst.Key = src.JobKey
		dst.Name = src.Name
		dst.Group = src.Group
		dst.Origin = src.Origin
		dst.Executor = src.Executor
		dst.Principal = src.Principal
		dst.State = string(src.State)
		dst.PreviousState = string(src.PreviousState)
		dst.StartTime = cloneTime(src.StartTime)
		dst.EndTime = cloneTime(src.EndTime)
		dst.Attempts = dto.Ptr(src.Attempts)
		dst.MaxAttempts = dto.Ptr(src.MaxAttempts)

		dst.Result = nil
		switch {
		case src.Result == "":
		case json.Valid([]byte(src.Result)):
			dst.Result = json.RawMessage(src.Result)
		default:
			dst.Result = src.Result
		}
		return dst, nil
	})

var eventTranslator = translate.Func[domain.Event, dto.EventDTO](
	func(_ *translate.ModelTranslator, src *domain.Event, dst *dto.EventDTO) (*dto.EventDTO, error) {
		dst.ID = src.ID
		dst.Target = string(src.Target)
		dst.TargetName = src.TargetName
		dst.Type = string(src.Type)
		dst.Timestamp = dto.TimePtr(src.Timestamp)
		dst.EntityID = src.EntityID
		dst.OwnerID = src.OwnerID
		dst.ConsumerUUID = src.ConsumerUUID
		dst.ReferenceID = src.ReferenceID
		dst.ReferenceType = src.ReferenceType
		dst.EventData = src.EventData
		dst.MessageText = src.MessageText

		dst.Principal = nil
		if src.PrincipalType != "" || src.PrincipalName != "" {
			dst.Principal = &dto.PrincipalDataDTO{Type: src.PrincipalType, Name: src.PrincipalName}
		}
		return dst, nil
	})
