package handler

import (
	"context"

	"github.com/ogurasousui/dwrecords/internal/adapters/grpc/records"
	"github.com/ogurasousui/dwrecords/internal/core/agency"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ records.AgencyServer = (*AgencyGrpcHandler)(nil)

// AgencyGrpcHandler は AgencyService の gRPC 実装です。
type AgencyGrpcHandler struct {
	svc agency.UseCase
}

// NewAgencyGrpcHandler は AgencyGrpcHandler を生成します。
func NewAgencyGrpcHandler(svc agency.UseCase) *AgencyGrpcHandler {
	return &AgencyGrpcHandler{svc: svc}
}

// CreateAgency は斡旋業者を登録します。
func (h *AgencyGrpcHandler) CreateAgency(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := newRequest(req)
	if err != nil {
		return nil, err
	}

	name, err := r.str("name")
	if err != nil {
		return nil, err
	}
	code, err := r.str("code")
	if err != nil {
		return nil, err
	}
	license, err := r.optStr("license_number")
	if err != nil {
		return nil, err
	}

	created, err := h.svc.CreateAgency(ctx, agency.CreateAgencyInput{
		Name:          name,
		Code:          code,
		LicenseNumber: license,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newResponse(map[string]any{"agency": agencyFields(created)})
}

// GetAgency は斡旋業者を取得します。
func (h *AgencyGrpcHandler) GetAgency(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := newRequest(req)
	if err != nil {
		return nil, err
	}
	id, err := r.str("id")
	if err != nil {
		return nil, err
	}

	found, err := h.svc.GetAgency(ctx, agency.GetAgencyInput{ID: id})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newResponse(map[string]any{"agency": agencyFields(found)})
}

// ListAgencies は斡旋業者の一覧を取得します。
func (h *AgencyGrpcHandler) ListAgencies(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := newRequest(req)
	if err != nil {
		return nil, err
	}

	pageSize, err := r.integer("page_size")
	if err != nil {
		return nil, err
	}
	pageToken, err := r.str("page_token")
	if err != nil {
		return nil, err
	}
	statusPtr, err := agencyStatus(r)
	if err != nil {
		return nil, err
	}

	result, err := h.svc.ListAgencies(ctx, agency.ListAgenciesInput{
		PageSize:  pageSize,
		PageToken: pageToken,
		Status:    statusPtr,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	agencies := make([]any, 0, len(result.Agencies))
	for _, a := range result.Agencies {
		agencies = append(agencies, agencyFields(a))
	}

	return newResponse(map[string]any{
		"agencies":        agencies,
		"next_page_token": result.NextPageToken,
	})
}

// UpdateAgency は斡旋業者情報を部分更新します。
func (h *AgencyGrpcHandler) UpdateAgency(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := newRequest(req)
	if err != nil {
		return nil, err
	}

	in := agency.UpdateAgencyInput{}
	if in.ID, err = r.str("id"); err != nil {
		return nil, err
	}
	if in.Name, err = r.optStr("name"); err != nil {
		return nil, err
	}
	if in.Code, err = r.optStr("code"); err != nil {
		return nil, err
	}
	if in.LicenseNumber, err = r.optStr("license_number"); err != nil {
		return nil, err
	}
	if in.Status, err = agencyStatus(r); err != nil {
		return nil, err
	}

	updated, err := h.svc.UpdateAgency(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	return newResponse(map[string]any{"agency": agencyFields(updated)})
}

// DeleteAgency は斡旋業者を削除します。
func (h *AgencyGrpcHandler) DeleteAgency(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := newRequest(req)
	if err != nil {
		return nil, err
	}
	id, err := r.str("id")
	if err != nil {
		return nil, err
	}

	if err := h.svc.DeleteAgency(ctx, agency.DeleteAgencyInput{ID: id}); err != nil {
		return nil, toStatusError(err)
	}

	return newResponse(map[string]any{})
}

func agencyStatus(r request) (*agency.Status, error) {
	raw, err := r.str("status")
	if err != nil || raw == "" {
		return nil, err
	}
	s := agency.Status(raw)
	return &s, nil
}

func agencyFields(a *agency.Agency) map[string]any {
	if a == nil {
		return nil
	}
	return map[string]any{
		"id":             a.ID,
		"name":           a.Name,
		"code":           a.Code,
		"status":         string(a.Status),
		"license_number": optionalString(a.LicenseNumber),
		"created_at":     formatTimestamp(a.CreatedAt),
		"updated_at":     formatTimestamp(a.UpdatedAt),
	}
}
