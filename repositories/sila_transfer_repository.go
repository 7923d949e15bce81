package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/shifi/transfers-backend/infra"
	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/repositories/httpmodels"
)

// SilaTransferRepository is the single integration point with the ACH
// provider. It maps provider payloads at the boundary and never retries:
// retry policy belongs to the caller, and only for idempotent reads.
type SilaTransferRepository struct {
	config     infra.SilaConfig
	httpClient *http.Client
}

func NewSilaTransferRepository(config infra.SilaConfig, httpClient *http.Client) SilaTransferRepository {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return SilaTransferRepository{
		config:     config,
		httpClient: httpClient,
	}
}

type silaCallCredentials struct {
	appId   string
	appKey  string
	baseUrl string
}

// resolve picks merchant-issued credentials over the platform ones. With
// merchant credentials the environment comes from the access token's own
// encoding; otherwise from the configured environment.
func (repo SilaTransferRepository) resolve(creds models.ProviderCredentials) silaCallCredentials {
	if creds.HasMerchantCredentials() {
		return silaCallCredentials{
			appId:   creds.AppId.String,
			appKey:  creds.AppKey.String,
			baseUrl: repo.config.BaseUrl(creds.SandboxAccess()),
		}
	}
	return silaCallCredentials{
		appId:   repo.config.AppId,
		appKey:  repo.config.AppKey,
		baseUrl: repo.config.BaseUrl(repo.config.SandboxByDefault()),
	}
}

func (repo SilaTransferRepository) do(
	ctx context.Context,
	creds models.ProviderCredentials,
	operation string,
	method string,
	path string,
	payload any,
) ([]byte, error) {
	call := repo.resolve(creds)

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "can't encode %s payload", operation)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, call.baseUrl+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-App-Id", call.appId)
	req.Header.Set("X-App-Key", call.appKey)
	if creds.AccessRef != "" {
		req.Header.Set("Authorization", "Bearer "+creds.AccessRef)
	}

	resp, err := repo.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "error calling provider on %s", operation)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading provider response on %s", operation)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, models.ProviderError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			RawBody:    rawBody,
		}
	}
	return rawBody, nil
}

func (repo SilaTransferRepository) AuthorizeTransfer(
	ctx context.Context,
	creds models.ProviderCredentials,
	input models.AuthorizeTransferInput,
) (models.AuthorizationDecision, error) {
	payload := map[string]any{
		"account_ref":  input.AccountRef,
		"direction":    input.Direction,
		"amount_cents": input.AmountCents,
		"counterparty": map[string]string{
			"legal_name": input.Counterparty.LegalName,
			"email":      input.Counterparty.Email,
			"phone":      input.Counterparty.Phone,
		},
	}
	if input.OriginatorId.Valid {
		payload["originator_id"] = input.OriginatorId.String
	}

	rawBody, err := repo.do(ctx, creds, "authorize_transfer",
		http.MethodPost, "/v1/transfers/authorize", payload)
	if err != nil {
		return models.AuthorizationDecision{}, err
	}

	var auth httpmodels.HTTPSilaAuthorization
	if err := json.Unmarshal(rawBody, &auth); err != nil {
		return models.AuthorizationDecision{}, errors.Wrap(err, "can't decode authorization response")
	}
	return httpmodels.AdaptSilaAuthorization(auth)
}

func (repo SilaTransferRepository) CreateTransfer(
	ctx context.Context,
	creds models.ProviderCredentials,
	input models.ProviderTransferCreateInput,
) (models.TransferSnapshot, error) {
	payload := map[string]any{
		"authorization_id": input.AuthorizationId,
		"account_ref":      input.AccountRef,
		"direction":        input.Direction,
		"amount_cents":     input.AmountCents,
		"description":      input.Description,
	}
	if input.DestinationAccountRef.Valid {
		payload["destination_account_ref"] = input.DestinationAccountRef.String
	}
	if input.OriginatorId.Valid {
		payload["originator_id"] = input.OriginatorId.String
	}

	rawBody, err := repo.do(ctx, creds, "create_transfer",
		http.MethodPost, "/v1/transfers", payload)
	if err != nil {
		return models.TransferSnapshot{}, err
	}
	return decodeTransfer(rawBody)
}

func (repo SilaTransferRepository) GetTransfer(
	ctx context.Context,
	creds models.ProviderCredentials,
	externalTransferId string,
) (models.TransferSnapshot, error) {
	rawBody, err := repo.do(ctx, creds, "get_transfer",
		http.MethodGet, fmt.Sprintf("/v1/transfers/%s", externalTransferId), nil)
	if err != nil {
		return models.TransferSnapshot{}, err
	}
	return decodeTransfer(rawBody)
}

func (repo SilaTransferRepository) CancelTransfer(
	ctx context.Context,
	creds models.ProviderCredentials,
	externalTransferId string,
) (models.TransferSnapshot, error) {
	rawBody, err := repo.do(ctx, creds, "cancel_transfer",
		http.MethodPost, fmt.Sprintf("/v1/transfers/%s/cancel", externalTransferId), nil)
	if err != nil {
		return models.TransferSnapshot{}, err
	}
	return decodeTransfer(rawBody)
}

func (repo SilaTransferRepository) CreateRecurringTransfer(
	ctx context.Context,
	creds models.ProviderCredentials,
	intent models.RecurringTransferIntent,
) (models.RecurringTransferHandle, error) {
	schedule := map[string]any{
		"frequency":  intent.Schedule.Frequency,
		"start_date": intent.Schedule.StartDate.Format("2006-01-02"),
	}
	if intent.Schedule.EndDate.Valid {
		schedule["end_date"] = intent.Schedule.EndDate.Time.Format("2006-01-02")
	}
	if intent.Schedule.DayOfWeek.Valid {
		schedule["day_of_week"] = intent.Schedule.DayOfWeek.Int32
	}
	if intent.Schedule.DayOfMonth.Valid {
		schedule["day_of_month"] = intent.Schedule.DayOfMonth.Int32
	}

	payload := map[string]any{
		"account_ref":  intent.AccountRef,
		"amount_cents": intent.AmountCents,
		"description":  intent.Schedule.Description,
		"schedule":     schedule,
		"counterparty": map[string]string{
			"legal_name": intent.Counterparty.LegalName,
			"email":      intent.Counterparty.Email,
			"phone":      intent.Counterparty.Phone,
		},
	}
	if intent.OriginatorId.Valid {
		payload["originator_id"] = intent.OriginatorId.String
	}

	rawBody, err := repo.do(ctx, creds, "create_recurring_transfer",
		http.MethodPost, "/v1/recurring_transfers", payload)
	if err != nil {
		return models.RecurringTransferHandle{}, err
	}

	var recurring httpmodels.HTTPSilaRecurringTransfer
	if err := json.Unmarshal(rawBody, &recurring); err != nil {
		return models.RecurringTransferHandle{}, errors.Wrap(err, "can't decode recurring transfer response")
	}
	return models.RecurringTransferHandle{
		RecurringTransferId: recurring.RecurringTransferId,
		Schedule:            intent.Schedule,
	}, nil
}

func (repo SilaTransferRepository) ListRecurringOccurrences(
	ctx context.Context,
	creds models.ProviderCredentials,
	recurringTransferId string,
) ([]models.RecurringOccurrence, error) {
	rawBody, err := repo.do(ctx, creds, "list_recurring_occurrences",
		http.MethodGet, fmt.Sprintf("/v1/recurring_transfers/%s/occurrences", recurringTransferId), nil)
	if err != nil {
		return nil, err
	}

	var occurrences httpmodels.HTTPSilaRecurringOccurrences
	if err := json.Unmarshal(rawBody, &occurrences); err != nil {
		return nil, errors.Wrap(err, "can't decode recurring occurrences response")
	}
	return httpmodels.AdaptSilaRecurringOccurrences(occurrences), nil
}

func (repo SilaTransferRepository) RegisterOriginator(
	ctx context.Context,
	creds models.ProviderCredentials,
	profile models.OriginatorProfile,
) (string, json.RawMessage, error) {
	payload := map[string]any{
		"legal_name":  profile.LegalName,
		"email":       profile.Email,
		"website":     profile.Website,
		"address":     profile.Address,
		"city":        profile.City,
		"state":       profile.State,
		"postal_code": profile.PostalCode,
	}

	rawBody, err := repo.do(ctx, creds, "register_originator",
		http.MethodPost, "/v1/originators", payload)
	if err != nil {
		return "", nil, err
	}

	var originator httpmodels.HTTPSilaOriginator
	if err := json.Unmarshal(rawBody, &originator); err != nil {
		return "", nil, errors.Wrap(err, "can't decode originator response")
	}
	if originator.OriginatorId == "" {
		return "", nil, errors.New("provider returned an empty originator id")
	}
	return originator.OriginatorId, json.RawMessage(rawBody), nil
}

func decodeTransfer(rawBody []byte) (models.TransferSnapshot, error) {
	var transfer httpmodels.HTTPSilaTransfer
	if err := json.Unmarshal(rawBody, &transfer); err != nil {
		return models.TransferSnapshot{}, errors.Wrap(err, "can't decode transfer response")
	}
	return httpmodels.AdaptSilaTransfer(transfer, rawBody)
}
