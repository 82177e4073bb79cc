package notify

import (
	"fmt"

	"github.com/ceptevar-api/internal/domain"
	"github.com/ceptevar-api/internal/pkg/phone"
)

// Supported message languages.
const (
	LangTurkish = "tr"
	LangEnglish = "en"
	LangArabic  = "ar"
)

// ResolveLanguage picks the message language for a recipient. An explicit
// preference wins; otherwise the phone's country prefix decides, and
// everything else falls back to Turkish.
func ResolveLanguage(explicit, phoneNumber string) string {
	switch explicit {
	case LangTurkish, LangEnglish, LangArabic:
		return explicit
	}
	if phoneNumber != "" {
		return phone.Language(phoneNumber)
	}
	return LangTurkish
}

// CodeSMS formats the verification code SMS body.
func CodeSMS(brand, code, lang string) string {
	switch lang {
	case LangEnglish:
		return fmt.Sprintf("Your %s verification code is: %s", brand, code)
	case LangArabic:
		return fmt.Sprintf("رمز التحقق الخاص بك في %s هو: %s", brand, code)
	default:
		return fmt.Sprintf("%s doğrulama kodunuz: %s", brand, code)
	}
}

// CodeEmail formats the verification code email subject and body.
func CodeEmail(brand, code, lang string) (subject, body string) {
	switch lang {
	case LangEnglish:
		return fmt.Sprintf("%s Verification Code", brand),
			fmt.Sprintf("Your %s verification code is: %s\n\nThis code expires in 5 minutes.", brand, code)
	case LangArabic:
		return fmt.Sprintf("رمز التحقق من %s", brand),
			fmt.Sprintf("رمز التحقق الخاص بك في %s هو: %s\n\nتنتهي صلاحية هذا الرمز خلال 5 دقائق.", brand, code)
	default:
		return fmt.Sprintf("%s Doğrulama Kodu", brand),
			fmt.Sprintf("%s doğrulama kodunuz: %s\n\nBu kod 5 dakika içinde geçerliliğini yitirir.", brand, code)
	}
}

// WelcomeSMS formats the post-registration welcome message.
func WelcomeSMS(brand, name, lang string) string {
	switch lang {
	case LangEnglish:
		return fmt.Sprintf("Welcome to %s, %s! Your account is ready.", brand, name)
	case LangArabic:
		return fmt.Sprintf("مرحبا بك في %s يا %s! حسابك جاهز.", brand, name)
	default:
		return fmt.Sprintf("%s ailesine hoş geldin %s! Hesabın hazır.", brand, name)
	}
}

// OrderStatusSMS formats the order status change notification.
func OrderStatusSMS(brand, orderNumber string, status domain.OrderStatus, lang string) string {
	switch lang {
	case LangEnglish:
		return fmt.Sprintf("%s: your order %s is now %s.", brand, orderNumber, orderStatusEN(status))
	case LangArabic:
		return fmt.Sprintf("%s: طلبك %s الآن %s.", brand, orderNumber, orderStatusAR(status))
	default:
		return fmt.Sprintf("%s: %s numaralı siparişiniz %s.", brand, orderNumber, orderStatusTR(status))
	}
}

func orderStatusTR(s domain.OrderStatus) string {
	switch s {
	case domain.OrderConfirmed:
		return "onaylandı"
	case domain.OrderShipped:
		return "kargoya verildi"
	case domain.OrderDelivered:
		return "teslim edildi"
	case domain.OrderCancelled:
		return "iptal edildi"
	default:
		return "alındı"
	}
}

func orderStatusEN(s domain.OrderStatus) string {
	switch s {
	case domain.OrderConfirmed:
		return "confirmed"
	case domain.OrderShipped:
		return "shipped"
	case domain.OrderDelivered:
		return "delivered"
	case domain.OrderCancelled:
		return "cancelled"
	default:
		return "received"
	}
}

func orderStatusAR(s domain.OrderStatus) string {
	switch s {
	case domain.OrderConfirmed:
		return "مؤكد"
	case domain.OrderShipped:
		return "قيد الشحن"
	case domain.OrderDelivered:
		return "تم التسليم"
	case domain.OrderCancelled:
		return "ملغى"
	default:
		return "مستلم"
	}
}

// PromoSMS prefixes a promotional message with the brand name.
func PromoSMS(brand, message string) string {
	return fmt.Sprintf("%s: %s", brand, message)
}
