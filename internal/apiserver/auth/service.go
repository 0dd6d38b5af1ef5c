package auth

import (
	"context"
	"errors"
	"log"

	"github.com/samber/oops"

	"accounts-auth/internal/shared/eventbus"
	"accounts-auth/internal/shared/model"
	"accounts-auth/internal/shared/storage"
)

// Service 注册/登录流程
//
// 请求之间无状态；邮箱唯一性由存储层约束保证，
// 并发注册同一邮箱时落败的一方得到 ACCOUNT_ALREADY_EXISTS。
type Service struct {
	store  storage.AccountStore
	hasher PasswordHasher
	tokens *TokenIssuer
	events eventbus.AccountEventBus
}

// NewService 创建 Service，events 为 nil 时不发布事件
func NewService(store storage.AccountStore, hasher PasswordHasher, tokens *TokenIssuer, events eventbus.AccountEventBus) *Service {
	if events == nil {
		events = eventbus.NewNoOpEventBus()
	}
	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		events: events,
	}
}

// Register 注册账号：校验 → 查重 → 哈希 → 持久化
func (s *Service) Register(ctx context.Context, kind model.AccountKind, in RegisterInput) (*model.Account, error) {
	in.Email = model.NormalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	existing, err := s.store.GetAccountByEmail(ctx, kind, in.Email)
	if err != nil {
		return nil, oops.Code(CodeInternal).
			With("operation", "get account by email").
			With("kind", kind).
			Wrap(err)
	}
	if existing != nil {
		return nil, oops.Code(CodeAlreadyExists).With("kind", kind).Errorf("%s already exists", kind)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, oops.Code(CodeInternal).With("operation", "hash password").Wrap(err)
	}

	account := &model.Account{
		Kind:         kind,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.store.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, oops.Code(CodeAlreadyExists).With("kind", kind).Errorf("%s already exists", kind)
		}
		return nil, oops.Code(CodeInternal).
			With("operation", "create account").
			With("kind", kind).
			Wrap(err)
	}

	s.publish(ctx, eventbus.AccountEventRegistered, account)
	log.Printf("[auth] %s registered: %s (%s)", kind, account.Email, account.ID)
	return account, nil
}

// Login 登录：查找 → 校验密码 → 签发令牌
func (s *Service) Login(ctx context.Context, kind model.AccountKind, in LoginInput) (string, *model.Account, error) {
	in.Email = model.NormalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return "", nil, err
	}

	account, err := s.store.GetAccountByEmail(ctx, kind, in.Email)
	if err != nil {
		return "", nil, oops.Code(CodeInternal).
			With("operation", "get account by email").
			With("kind", kind).
			Wrap(err)
	}
	if account == nil {
		return "", nil, oops.Code(CodeNotFound).With("kind", kind).Errorf("%s not found", kind)
	}

	if !s.hasher.Verify(in.Password, account.PasswordHash) {
		return "", nil, oops.Code(CodeInvalidCredentials).Errorf("invalid credentials")
	}

	token, err := s.tokens.Issue(account.ID, kind)
	if err != nil {
		return "", nil, oops.Code(CodeInternal).With("operation", "issue token").Wrap(err)
	}

	s.publish(ctx, eventbus.AccountEventLogin, account)
	log.Printf("[auth] %s logged in: %s", kind, account.Email)
	return token, account, nil
}

// Account 返回令牌对应的账号
func (s *Service) Account(ctx context.Context, claims *Claims) (*model.Account, error) {
	account, err := s.store.GetAccountByID(ctx, claims.Kind, claims.Subject)
	if err != nil {
		return nil, oops.Code(CodeInternal).
			With("operation", "get account by id").
			With("kind", claims.Kind).
			Wrap(err)
	}
	if account == nil {
		return nil, oops.Code(CodeNotFound).With("kind", claims.Kind).Errorf("%s not found", claims.Kind)
	}
	return account, nil
}

// publish 发布账号事件，失败只记录日志
func (s *Service) publish(ctx context.Context, typ eventbus.AccountEventType, account *model.Account) {
	if err := s.events.PublishAccountEvent(ctx, eventbus.NewAccountEvent(typ, account)); err != nil {
		log.Printf("[auth] publish %s event failed: %v", typ, err)
	}
}
