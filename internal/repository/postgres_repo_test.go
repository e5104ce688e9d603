package repository

import "testing"

// 各Postgresリポジトリがインターフェースを満たすことを検証
func TestPostgresRepos_ImplementInterfaces(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
	var _ IdentityRepository = (*PostgresIdentityRepo)(nil)
	var _ SessionRepository = (*PostgresSessionRepo)(nil)
	var _ CommentRepository = (*PostgresCommentRepo)(nil)
}

func TestNewPostgresUserRepo_Initializes(t *testing.T) {
	if NewPostgresUserRepo(nil) == nil {
		t.Fatal("expected non-nil repo")
	}
}

func TestNewPostgresIdentityRepo_Initializes(t *testing.T) {
	if NewPostgresIdentityRepo(nil) == nil {
		t.Fatal("expected non-nil repo")
	}
}

func TestNewPostgresSessionRepo_Initializes(t *testing.T) {
	if NewPostgresSessionRepo(nil) == nil {
		t.Fatal("expected non-nil repo")
	}
}

func TestNewPostgresCommentRepo_Initializes(t *testing.T) {
	if NewPostgresCommentRepo(nil) == nil {
		t.Fatal("expected non-nil repo")
	}
}
