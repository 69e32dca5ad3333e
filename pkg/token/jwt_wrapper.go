package token

import "eduwatch_service/pkg/config"

// 這些變數會在測試時被覆蓋，讓 usecase 測試可以 mock token 行為
var (
	GenerateJWTFunc = GenerateJWT
	ParseJWTFunc    = ParseJWT
)

// GenerateJWTWrapper 讓 usecase test mock 使用這個包裝函數
func GenerateJWTWrapper(memberID, memberName, role string) (string, error) {
	return GenerateJWTFunc(memberID, memberName, role, config.EnvConfig.WatchService)
}

// ParseJWTWrapper 讓 usecase test mock 使用這個包裝函數
func ParseJWTWrapper(t string) (*Claims, error) {
	return ParseJWTFunc(t)
}
