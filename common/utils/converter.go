package utils

import (
	"encoding/json"
	"fmt"

	prt "github.com/lokichain/loki-node/protocol"
)

// HashToString Hash 타입을 base64 문자열로 변환
func HashToString(hash prt.Hash) string {
	return hash.String()
}

// StringToHash base64 문자열을 Hash 타입으로 변환
func StringToHash(str string) (prt.Hash, error) {
	var hash prt.Hash
	if err := hash.UnmarshalText([]byte(str)); err != nil {
		return prt.Hash{}, fmt.Errorf("invalid hash string: %w", err)
	}
	return hash, nil
}

// ShortHash 로그 출력용 앞 12자리
func ShortHash(hash prt.Hash) string {
	s := hash.String()
	if len(s) > 12 {
		return s[:12]
	}
	return s
}

// AddressToString Address 타입을 bech32m 문자열로 변환
func AddressToString(address prt.Address) string {
	return address.String()
}

// StringToAddress bech32m 문자열을 Address 타입으로 변환
func StringToAddress(str string) (prt.Address, error) {
	return prt.ParseAddress(str)
}

// SerializeData 저장용 JSON 직렬화
func SerializeData(data interface{}) ([]byte, error) {
	return json.Marshal(data)
}

// DeserializeData 저장된 JSON을 객체로 역직렬화
func DeserializeData(data []byte, result interface{}) error {
	return json.Unmarshal(data, result)
}
