package gewe

// Sex is the profile gender code accepted by UpdateProfile.
type Sex int

const (
	SexMale   Sex = 1
	SexFemale Sex = 2
)

// ContactOperation is the opType of UploadPhoneAddressList.
type ContactOperation int

const (
	ContactAdd    ContactOperation = 1
	ContactRemove ContactOperation = 2
)

// PrivacyOption selects the setting changed by PrivacySettings.
type PrivacyOption int

const (
	PrivacyRequireVerification PrivacyOption = 4
	PrivacyRecommendMobile     PrivacyOption = 7
	PrivacyFindByPhone         PrivacyOption = 8
	PrivacyFindByWxid          PrivacyOption = 25
	PrivacyFindByChatroom      PrivacyOption = 38
	PrivacyAddByQrCode         PrivacyOption = 39
	PrivacyAddByNameCard       PrivacyOption = 40
)
