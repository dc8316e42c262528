package handler

import (
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/identity-merge/internal/model"
)

func stringField(s *structpb.Struct, name string) string {
	return s.GetFields()[name].GetStringValue()
}

func uuidField(s *structpb.Struct, name string) (uuid.UUID, error) {
	raw := stringField(s, name)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid uuid", name)
	}
	return id, nil
}

func claimsField(s *structpb.Struct, name string) ([]model.Claim, error) {
	values := s.GetFields()[name].GetListValue().GetValues()
	claims := make([]model.Claim, 0, len(values))
	for i, v := range values {
		c := v.GetStructValue()
		if c == nil {
			return nil, fmt.Errorf("%s[%d] must be an object", name, i)
		}
		claim := model.Claim{Type: stringField(c, "type"), Value: stringField(c, "value")}
		if claim.Type == "" {
			return nil, fmt.Errorf("%s[%d].type is required", name, i)
		}
		claims = append(claims, claim)
	}
	return claims, nil
}

func loginValue(l model.LoginInfo) map[string]interface{} {
	return map[string]interface{}{
		"provider":     l.Provider,
		"provider_key": l.ProviderKey,
		"display_name": l.DisplayName,
	}
}

func mergeResultToStruct(r model.MergeResult) (*structpb.Struct, error) {
	steps := make([]interface{}, 0, len(r.Steps))
	for _, s := range r.Steps {
		step := map[string]interface{}{"step": string(s.Step), "ok": !s.Failed()}
		if s.Failed() {
			step["error"] = s.Err.Error()
		}
		steps = append(steps, step)
	}

	out := map[string]interface{}{
		"status":    r.Status.String(),
		"target_id": r.TargetID.String(),
		"source_id": r.SourceID.String(),
		"steps":     steps,
	}
	if r.HookErr != nil {
		out["hook_error"] = r.HookErr.Error()
	}
	return structpb.NewStruct(out)
}

func emailsToStruct(accountID uuid.UUID, emails []model.EmailInfo, logins []model.LoginEmail) (*structpb.Struct, error) {
	emailList := make([]interface{}, 0, len(emails))
	for _, e := range emails {
		item := map[string]interface{}{"email": e.Email}
		if e.Login != nil {
			item["login"] = loginValue(*e.Login)
		}
		emailList = append(emailList, item)
	}

	loginList := make([]interface{}, 0, len(logins))
	for _, l := range logins {
		item := loginValue(l.Login)
		if l.Email != nil {
			item["email"] = *l.Email
		}
		loginList = append(loginList, item)
	}

	return structpb.NewStruct(map[string]interface{}{
		"account_id": accountID.String(),
		"emails":     emailList,
		"logins":     loginList,
	})
}

func resolutionToStruct(action string, account model.Account, identity model.ExternalIdentity) (*structpb.Struct, error) {
	out := map[string]interface{}{
		"action":     action,
		"account_id": account.ID.String(),
		"user_name":  account.UserName,
		"login":      loginValue(identity.Login),
	}
	if identity.HasEmail() {
		out["email"] = identity.Email
	}
	return structpb.NewStruct(out)
}
