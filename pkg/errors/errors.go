package errors

import "errors"

// ErrReadOnly 只读模式：viewer 角色禁止任何排班变更操作
var ErrReadOnly = errors.New("当前为只读模式，禁止修改")
